package invoice

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

type payRequest struct {
	DataPagamento string `json:"data_pagamento"` // YYYY-MM-DD, defaults to today
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Pay(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid id", nil)
		return
	}

	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	when := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DataPagamento != "" {
		when, err = time.Parse("2006-01-02", req.DataPagamento)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "data_pagamento must be YYYY-MM-DD", nil)
			return
		}
	}

	nota, err := h.service.Pay(c.Request.Context(), c.GetInt64("tenant_id"), id, when)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nota, nil)
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	notas := rg.Group("/notas-fiscais")
	{
		notas.POST("/:id/pagar", h.Pay)
	}
}
