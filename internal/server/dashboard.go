package server

import (
	"github.com/gin-gonic/gin"
	dashboarddomain "github.com/railzwaylabs/backoffice/internal/dashboard/domain"
)

// @Summary      Dashboard Summary
// @Description  Store wide counts, revenue and low stock figures
// @Tags         dashboard
// @Produce      json
// @Param        low_stock_threshold  query  int  false  "Low stock threshold"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /dashboard [get]
func (s *Server) GetDashboard(c *gin.Context) {
	var query struct {
		LowStockThreshold *int `form:"low_stock_threshold"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.dashboardSvc.Summary(c.Request.Context(), dashboarddomain.SummaryRequest{
		LowStockThreshold: query.LowStockThreshold,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
