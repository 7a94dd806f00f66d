package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type orderStatusRequest struct {
	Status string `json:"status"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// @Summary      List Orders
// @Description  List the most recent orders, newest first
// @Tags         orders
// @Produce      json
// @Success      200  {object}  ListResponse
// @Router       /orders [get]
func (s *Server) ListOrders(c *gin.Context) {
	items, err := s.orderSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, items, nil)
}

// @Summary      Get Order
// @Description  Get an order with its items and payment
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  DataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id} [get]
func (s *Server) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Order Status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path  string              true  "Order ID"
// @Param        request  body  orderStatusRequest  true  "Status"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id}/status [post]
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Payment Status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Order ID"
// @Param        request  body  paymentStatusRequest  true  "Payment Status"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id}/payment-status [post]
func (s *Server) UpdatePaymentStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.orderSvc.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Order
// @Description  Delete an order together with its items and payment
// @Tags         orders
// @Param        id   path  string  true  "Order ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id} [delete]
func (s *Server) DeleteOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.orderSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
