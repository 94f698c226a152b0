package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	productdomain "github.com/smallbiznis/storeadmin/internal/product/domain"
)

// ListProducts serves the storefront catalog. Filters that do not parse match
// nothing rather than failing the request.
func (s *Server) ListProducts(c *gin.Context) {
	var query productListQuery
	_ = c.ShouldBindQuery(&query)

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListRequest{
		StoreID:    storeParam(c),
		CategoryID: query.CategoryID,
		SizeID:     query.SizeID,
		ColorID:    query.ColorID,
		IsFeatured: query.IsFeatured,
		SortBy:     query.SortBy,
		OrderBy:    query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetProduct(c *gin.Context) {
	id, ok := requireIDParam(c, productdomain.Kind.Title)
	if !ok {
		return
	}

	resp, err := s.productSvc.Get(c.Request.Context(), storeParam(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req productdomain.CreateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)

	resp, err := s.productSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req productdomain.UpdateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)
	req.ID = idParam(c)

	resp, err := s.productSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteProduct(c *gin.Context) {
	resp, err := s.productSvc.Delete(c.Request.Context(), productdomain.DeleteRequest{
		StoreID: storeParam(c),
		ID:      idParam(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
