package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sizedomain "github.com/smallbiznis/storeadmin/internal/size/domain"
)

func (s *Server) ListSizes(c *gin.Context) {
	resp, err := s.sizeSvc.List(c.Request.Context(), storeParam(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetSize(c *gin.Context) {
	id, ok := requireIDParam(c, sizedomain.Kind.Title)
	if !ok {
		return
	}

	resp, err := s.sizeSvc.Get(c.Request.Context(), storeParam(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateSize(c *gin.Context) {
	var req sizedomain.CreateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)

	resp, err := s.sizeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateSize(c *gin.Context) {
	var req sizedomain.UpdateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)
	req.ID = idParam(c)

	resp, err := s.sizeSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteSize(c *gin.Context) {
	resp, err := s.sizeSvc.Delete(c.Request.Context(), sizedomain.DeleteRequest{
		StoreID: storeParam(c),
		ID:      idParam(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
