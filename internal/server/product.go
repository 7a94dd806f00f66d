package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	productdomain "github.com/railzwaylabs/backoffice/internal/product/domain"
	"github.com/railzwaylabs/backoffice/pkg/db/pagination"
	"github.com/railzwaylabs/backoffice/pkg/validation"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	ID          snowflake.ID    `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsFeatured  bool            `json:"is_featured"`
	CategoryID  snowflake.ID    `json:"category_id"`
	Metadata    map[string]any  `json:"metadata"`
}

// @Summary      List Products
// @Description  List products, optionally featured only, by category, sorted by price or paged.
// @Description  featured and sort each stand alone and reject the other filters.
// @Tags         products
// @Produce      json
// @Param        featured     query  bool    false  "Featured only"
// @Param        category_id  query  string  false  "Category ID"
// @Param        sort         query  string  false  "price_asc or price_desc"
// @Param        page         query  int     false  "Page"
// @Param        page_size    query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /products [get]
func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Featured   bool   `form:"featured"`
		CategoryID string `form:"category_id"`
		Sort       string `form:"sort"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	categoryID, byCategory, err := optionalID(query.CategoryID)
	if err != nil {
		AbortWithError(c, validation.New("category_id", "invalid_category", "invalid category id"))
		return
	}

	paged := query.Page != 0 || query.PageSize != 0
	switch {
	case query.Featured && (query.Sort != "" || byCategory || paged):
		AbortWithError(c, validation.New("featured", "conflicting_filters", "featured cannot be combined with sort, category_id or paging"))
		return
	case query.Sort != "" && (byCategory || paged):
		AbortWithError(c, validation.New("sort", "conflicting_filters", "sort cannot be combined with category_id or paging"))
		return
	}

	switch {
	case query.Featured:
		items, err := s.productSvc.ListFeatured(ctx)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondList(c, items, nil)
		return
	case query.Sort != "":
		var ascending bool
		switch strings.ToLower(strings.TrimSpace(query.Sort)) {
		case "price_asc":
			ascending = true
		case "price_desc":
		default:
			AbortWithError(c, validation.New("sort", "invalid_sort", "sort must be price_asc or price_desc"))
			return
		}
		items, err := s.productSvc.ListSortedByPrice(ctx, ascending)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondList(c, items, nil)
		return
	}

	if !paged {
		var items []productdomain.Product
		if byCategory {
			items, err = s.productSvc.ListByCategory(ctx, categoryID)
		} else {
			items, err = s.productSvc.List(ctx)
		}
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondList(c, items, nil)
		return
	}

	var (
		items []productdomain.Product
		total int64
	)
	if byCategory {
		items, err = s.productSvc.ListByCategoryPage(ctx, categoryID, query.Pagination)
		if err == nil {
			total, err = s.productSvc.CountByCategory(ctx, categoryID)
		}
	} else {
		items, err = s.productSvc.ListPage(ctx, query.Pagination)
		if err == nil {
			total, err = s.productSvc.Count(ctx)
		}
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	info := pagination.BuildPageInfo(query.Pagination, total)
	respondList(c, items, &info)
}

// @Summary      Product Category Options
// @Description  Categories a product can be assigned to
// @Tags         products
// @Produce      json
// @Success      200  {object}  ListResponse
// @Router       /products/categories [get]
func (s *Server) ListProductCategories(c *gin.Context) {
	items, err := s.productSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, items, nil)
}

// @Summary      Get Product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  DataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{id} [get]
func (s *Server) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Create Product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body productRequest true "Create Product Request"
// @Success      201  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /products [post]
func (s *Server) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		CategoryID:  req.CategoryID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DataResponse{Data: resp})
}

// @Summary      Update Product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path  string          true  "Product ID"
// @Param        request  body  productRequest  true  "Update Product Request"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{id} [put]
func (s *Server) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}
	if req.ID != 0 && req.ID != id {
		AbortWithError(c, errIDMismatch)
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateRequest{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		CategoryID:  req.CategoryID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Product
// @Tags         products
// @Param        id   path  string  true  "Product ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{id} [delete]
func (s *Server) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	// the service treats a missing product as a no-op, the API reports it
	if _, err := s.productSvc.Get(ctx, id); err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.productSvc.Delete(ctx, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
