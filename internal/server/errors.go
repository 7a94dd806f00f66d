package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	dashboarddomain "github.com/railzwaylabs/backoffice/internal/dashboard/domain"
	orderdomain "github.com/railzwaylabs/backoffice/internal/order/domain"
	productdomain "github.com/railzwaylabs/backoffice/internal/product/domain"
	"github.com/railzwaylabs/backoffice/pkg/validation"
)

var (
	errInvalidRequest = validation.New("", "invalid_request", "invalid request")
	errInvalidID      = validation.New("id", "invalid_id", "invalid id")
	errIDMismatch     = validation.New("id", "id_mismatch", "id in body does not match path")
)

// AbortWithError writes the error envelope for err and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := errorResponse(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: body})
}

func errorResponse(err error) (int, ErrorBody) {
	if verr, ok := validation.As(err); ok {
		return http.StatusBadRequest, ErrorBody{Code: verr.Code, Field: verr.Field, Message: verr.Message}
	}

	switch {
	case errors.Is(err, productdomain.ErrProductNotFound),
		errors.Is(err, categorydomain.ErrCategoryNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, orderdomain.ErrPaymentNotFound):
		return http.StatusNotFound, ErrorBody{Code: err.Error(), Message: "resource not found"}
	case errors.Is(err, categorydomain.ErrCategoryInUse):
		return http.StatusConflict, ErrorBody{Code: err.Error(), Message: "category still has products"}
	case errors.Is(err, dashboarddomain.ErrInvalidThreshold):
		return http.StatusBadRequest, ErrorBody{Code: err.Error(), Field: "low_stock_threshold", Message: "threshold must be non-negative"}
	default:
		return http.StatusInternalServerError, ErrorBody{Code: "internal_error", Message: "internal server error"}
	}
}
