package payroll

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type processRequest struct {
	Competencia string `json:"competencia" binding:"required"`
}

type folhaResponse struct {
	ID             int64           `json:"id"`
	FuncionarioID  int64           `json:"funcionario_id"`
	Competencia    string          `json:"competencia"`
	SalarioBruto   decimal.Decimal `json:"salario_bruto"`
	INSS           decimal.Decimal `json:"inss"`
	IRRF           decimal.Decimal `json:"irrf"`
	Encargos       decimal.Decimal `json:"encargos"`
	SalarioLiquido decimal.Decimal `json:"salario_liquido"`
	Status         string          `json:"status"`
}

func (h *Handler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	folhas, err := h.service.ProcessMonth(c.Request.Context(), c.GetInt64("tenant_id"), req.Competencia)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]folhaResponse, 0, len(folhas))
	for _, f := range folhas {
		out = append(out, folhaResponse{
			ID:             f.ID,
			FuncionarioID:  f.FuncionarioID,
			Competencia:    f.Competencia,
			SalarioBruto:   f.SalarioBruto,
			INSS:           f.INSS,
			IRRF:           f.IRRF,
			Encargos:       f.Encargos,
			SalarioLiquido: f.SalarioLiquido,
			Status:         f.Status,
		})
	}

	response.Success(c, http.StatusCreated, out, nil)
}

func (h *Handler) Close(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	handled, err := h.service.CloseMonth(c.Request.Context(), c.GetInt64("tenant_id"), req.Competencia)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"competencia": req.Competencia,
		"handlers":    handled,
	}, nil)
}
