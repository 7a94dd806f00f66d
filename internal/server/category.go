package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	"github.com/railzwaylabs/backoffice/pkg/db/pagination"
)

type categoryRequest struct {
	ID          snowflake.ID `json:"id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
}

// @Summary      List Categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  ListResponse
// @Router       /categories [get]
func (s *Server) ListCategories(c *gin.Context) {
	items, err := s.categorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, items, nil)
}

// @Summary      Get Category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  DataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /categories/{id} [get]
func (s *Server) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.categorySvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Category Products
// @Tags         categories
// @Produce      json
// @Param        id         path   string  true   "Category ID"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /categories/{id}/products [get]
func (s *Server) ListCategoryProducts(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	if _, err := s.categorySvc.Get(ctx, id); err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := s.productSvc.ListByCategoryPage(ctx, id, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	total, err := s.productSvc.CountByCategory(ctx, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	info := pagination.BuildPageInfo(page, total)
	respondList(c, items, &info)
}

// @Summary      Create Category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body categoryRequest true "Create Category Request"
// @Success      201  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /categories [post]
func (s *Server) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.categorySvc.Create(c.Request.Context(), categorydomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, DataResponse{Data: resp})
}

// @Summary      Update Category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id       path  string           true  "Category ID"
// @Param        request  body  categoryRequest  true  "Update Category Request"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /categories/{id} [put]
func (s *Server) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}
	if req.ID != 0 && req.ID != id {
		AbortWithError(c, errIDMismatch)
		return
	}

	resp, err := s.categorySvc.Update(c.Request.Context(), categorydomain.UpdateRequest{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Category
// @Tags         categories
// @Param        id   path  string  true  "Category ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /categories/{id} [delete]
func (s *Server) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.categorySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
