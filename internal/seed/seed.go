package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	orderdomain "github.com/railzwaylabs/backoffice/internal/order/domain"
	productdomain "github.com/railzwaylabs/backoffice/internal/product/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sampleProduct struct {
	name     string
	price    string
	stock    int
	featured bool
}

type sampleCategory struct {
	name        string
	description string
	products    []sampleProduct
}

var catalog = []sampleCategory{
	{
		name:        "Electronics",
		description: "Phones, audio and accessories",
		products: []sampleProduct{
			{name: "Wireless Headphones", price: "79.90", stock: 25, featured: true},
			{name: "USB-C Charger", price: "19.50", stock: 3},
			{name: "Bluetooth Speaker", price: "45.00", stock: 12},
		},
	},
	{
		name:        "Books",
		description: "Print and paperback titles",
		products: []sampleProduct{
			{name: "Go in Practice", price: "39.99", stock: 8, featured: true},
			{name: "Database Internals", price: "54.00", stock: 0},
		},
	},
	{
		name:        "Home",
		description: "Kitchen and living",
		products: []sampleProduct{
			{name: "Ceramic Mug", price: "9.00", stock: 40},
			{name: "Desk Lamp", price: "27.25", stock: 5, featured: true},
		},
	},
}

// Catalog inserts the sample categories and products that are not yet
// present, matching categories by slug and products by name. Sample orders
// are only added to an empty order table. Running it again changes nothing.
func Catalog(ctx context.Context, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var seeded []productdomain.Product
		for _, c := range catalog {
			category, err := ensureCategory(tx, node, c, now)
			if err != nil {
				return err
			}
			for _, p := range c.products {
				product, err := ensureProduct(tx, node, category.ID, p, now)
				if err != nil {
					return err
				}
				seeded = append(seeded, product)
			}
		}

		created, err := ensureOrders(tx, node, seeded, now)
		if err != nil {
			return err
		}

		log.Info("catalog seeded",
			zap.Int("categories", len(catalog)),
			zap.Int("products", len(seeded)),
			zap.Int("orders_created", created),
		)
		return nil
	})
}

func ensureCategory(tx *gorm.DB, node *snowflake.Node, c sampleCategory, now time.Time) (categorydomain.Category, error) {
	var category categorydomain.Category
	s := slug.Make(c.name)
	err := tx.Where("slug = ?", s).Take(&category).Error
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return category, err
	}

	category = categorydomain.Category{
		ID:          node.Generate(),
		Name:        c.name,
		Slug:        s,
		Description: c.description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return category, tx.Create(&category).Error
}

func ensureProduct(tx *gorm.DB, node *snowflake.Node, categoryID snowflake.ID, p sampleProduct, now time.Time) (productdomain.Product, error) {
	var product productdomain.Product
	err := tx.Where("category_id = ? AND name = ?", categoryID, p.name).Take(&product).Error
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return product, err
	}

	product = productdomain.Product{
		ID:         node.Generate(),
		Name:       p.name,
		Price:      decimal.RequireFromString(p.price),
		Stock:      p.stock,
		IsFeatured: p.featured,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return product, tx.Omit(clause.Associations).Create(&product).Error
}

func ensureOrders(tx *gorm.DB, node *snowflake.Node, products []productdomain.Product, now time.Time) (int, error) {
	var existing int64
	if err := tx.Model(&orderdomain.Order{}).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 || len(products) < 3 {
		return 0, nil
	}

	samples := []struct {
		customer string
		age      time.Duration
		status   orderdomain.OrderStatus
		payment  orderdomain.PaymentStatus
		lines    map[int]int
	}{
		{"Ada Lovelace", 0, orderdomain.OrderStatusPending, orderdomain.PaymentStatusPending, map[int]int{0: 1, 1: 2}},
		{"Grace Hopper", 26 * time.Hour, orderdomain.OrderStatusShipped, orderdomain.PaymentStatusCompleted, map[int]int{2: 1}},
		{"Alan Turing", 72 * time.Hour, orderdomain.OrderStatusDelivered, orderdomain.PaymentStatusCompleted, map[int]int{0: 1, 2: 3}},
	}

	for _, sample := range samples {
		orderID := node.Generate()
		orderDate := now.Add(-sample.age)

		var (
			total decimal.Decimal
			items []orderdomain.OrderItem
		)
		for idx, qty := range sample.lines {
			p := products[idx]
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
			items = append(items, orderdomain.OrderItem{
				ID:        node.Generate(),
				OrderID:   orderID,
				ProductID: p.ID,
				Quantity:  qty,
				UnitPrice: p.Price,
			})
		}

		order := orderdomain.Order{
			ID:           orderID,
			OrderDate:    orderDate,
			CustomerName: sample.customer,
			TotalAmount:  total,
			Status:       sample.status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return 0, err
		}
		if err := tx.Create(&items).Error; err != nil {
			return 0, err
		}

		payment := orderdomain.Payment{
			ID:            node.Generate(),
			OrderID:       orderID,
			Amount:        total,
			PaymentMethod: "card",
			PaymentStatus: sample.payment,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if sample.payment == orderdomain.PaymentStatusCompleted {
			paidAt := orderDate
			payment.PaidAt = &paidAt
		}
		if err := tx.Create(&payment).Error; err != nil {
			return 0, err
		}
	}
	return len(samples), nil
}
