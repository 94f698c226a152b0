package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	storedomain "github.com/smallbiznis/storeadmin/internal/store/domain"
)

func (s *Server) ListStores(c *gin.Context) {
	resp, err := s.storeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetStore(c *gin.Context) {
	resp, err := s.storeSvc.Get(c.Request.Context(), storeParam(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateStore(c *gin.Context) {
	var req storedomain.CreateRequest
	if !bind(c, &req) {
		return
	}

	resp, err := s.storeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateStore(c *gin.Context) {
	var req storedomain.UpdateRequest
	if !bind(c, &req) {
		return
	}
	req.ID = storeParam(c)

	resp, err := s.storeSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteStore(c *gin.Context) {
	resp, err := s.storeSvc.Delete(c.Request.Context(), storeParam(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
