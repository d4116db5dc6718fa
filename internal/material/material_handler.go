package material

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

type movementRequest struct {
	ObraID        int64           `json:"obra_id" binding:"required"`
	Item          string          `json:"item" binding:"required"`
	Quantidade    decimal.Decimal `json:"quantidade" binding:"required"`
	ValorUnitario decimal.Decimal `json:"valor_unitario" binding:"required"`
	Tipo          string          `json:"tipo" binding:"required"`
	Data          string          `json:"data" binding:"required"` // YYYY-MM-DD
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Record(c *gin.Context) {
	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "data must be YYYY-MM-DD", nil)
		return
	}

	mov, err := h.service.RecordMovement(c.Request.Context(), c.GetInt64("tenant_id"), MovementInput{
		ObraID:        req.ObraID,
		Item:          req.Item,
		Quantidade:    req.Quantidade,
		ValorUnitario: req.ValorUnitario,
		Tipo:          req.Tipo,
		Data:          data,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, mov, nil)
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	materiais := rg.Group("/materiais")
	{
		materiais.POST("/movimentos", h.Record)
	}
}
