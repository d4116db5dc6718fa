package employee

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type salaryRequest struct {
	Salario float64 `json:"salario" binding:"required,gt=0"`
	Motivo  string  `json:"motivo" binding:"required"`
}

func (h *Handler) UpdateSalary(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid id", nil)
		return
	}

	var req salaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	report, err := h.service.UpdateSalary(c.Request.Context(), c.GetInt64("tenant_id"), id, req.Salario, req.Motivo)
	if err != nil {
		if errors.Is(err, ErrSalaryUpdateRolledBack) {
			response.Error(c, http.StatusUnprocessableEntity, apperror.CodeStepFailed, err.Error(), report)
			return
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report, nil)
}
