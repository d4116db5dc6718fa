package proposal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

type approveRequest struct {
	DataAprovacao string `json:"data_aprovacao"` // YYYY-MM-DD, defaults to today
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid id", nil)
		return
	}

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	when := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DataAprovacao != "" {
		when, err = time.Parse("2006-01-02", req.DataAprovacao)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "data_aprovacao must be YYYY-MM-DD", nil)
			return
		}
	}

	prop, err := h.service.Approve(c.Request.Context(), c.GetInt64("tenant_id"), id, when)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, prop, nil)
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	propostas := rg.Group("/propostas")
	{
		propostas.POST("/:id/aprovar", h.Approve)
	}
}
