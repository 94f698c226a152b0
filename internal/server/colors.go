package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	colordomain "github.com/smallbiznis/storeadmin/internal/color/domain"
)

func (s *Server) ListColors(c *gin.Context) {
	resp, err := s.colorSvc.List(c.Request.Context(), storeParam(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetColor(c *gin.Context) {
	id, ok := requireIDParam(c, colordomain.Kind.Title)
	if !ok {
		return
	}

	resp, err := s.colorSvc.Get(c.Request.Context(), storeParam(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateColor(c *gin.Context) {
	var req colordomain.CreateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)

	resp, err := s.colorSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateColor(c *gin.Context) {
	var req colordomain.UpdateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)
	req.ID = idParam(c)

	resp, err := s.colorSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteColor(c *gin.Context) {
	resp, err := s.colorSvc.Delete(c.Request.Context(), colordomain.DeleteRequest{
		StoreID: storeParam(c),
		ID:      idParam(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
