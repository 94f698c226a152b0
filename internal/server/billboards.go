package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	billboarddomain "github.com/smallbiznis/storeadmin/internal/billboard/domain"
)

func (s *Server) ListBillboards(c *gin.Context) {
	resp, err := s.billboardSvc.List(c.Request.Context(), storeParam(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetBillboard(c *gin.Context) {
	id, ok := requireIDParam(c, billboarddomain.Kind.Title)
	if !ok {
		return
	}

	resp, err := s.billboardSvc.Get(c.Request.Context(), storeParam(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateBillboard(c *gin.Context) {
	var req billboarddomain.CreateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)

	resp, err := s.billboardSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateBillboard(c *gin.Context) {
	var req billboarddomain.UpdateRequest
	if !bind(c, &req) {
		return
	}
	req.StoreID = storeParam(c)
	req.ID = idParam(c)

	resp, err := s.billboardSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteBillboard(c *gin.Context) {
	resp, err := s.billboardSvc.Delete(c.Request.Context(), billboarddomain.DeleteRequest{
		StoreID: storeParam(c),
		ID:      idParam(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
