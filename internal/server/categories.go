package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	categorydomain "github.com/smallbiznis/storeadmin/internal/category/domain"
)

func (s *Server) ListCategories(c *gin.Context) {
	resp, err := s.categorySvc.List(c.Request.Context(), storeParam(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetCategory(c *gin.Context) {
	id, ok := requireIDParam(c, categorydomain.Kind.Title)
	if !ok {
		return
	}

	resp, err := s.categorySvc.Get(c.Request.Context(), storeParam(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req categorydomain.CreateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)

	resp, err := s.categorySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateCategory(c *gin.Context) {
	var req categorydomain.UpdateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)
	req.ID = idParam(c)

	resp, err := s.categorySvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteCategory(c *gin.Context) {
	resp, err := s.categorySvc.Delete(c.Request.Context(), categorydomain.DeleteRequest{
		StoreID: storeParam(c),
		ID:      idParam(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
