package rdo

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sige/internal/saga"
	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

type Handler struct {
	service Service
	store   saga.Store
}

func NewHandler(service Service, store saga.Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	in, err := req.toInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "data_relatorio must be YYYY-MM-DD", nil)
		return
	}

	rec, report, err := h.service.CreateRDO(c.Request.Context(), c.GetInt64("tenant_id"), in)
	if err != nil {
		if errors.Is(err, ErrCreationRolledBack) {
			response.Error(c, http.StatusUnprocessableEntity, apperror.CodeStepFailed, err.Error(), report)
			return
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toResponse(rec, report), nil)
}

func (h *Handler) SagaStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid saga id", nil)
		return
	}

	exec, steps, err := h.store.FindExecution(c.Request.Context(), c.GetInt64("tenant_id"), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "saga execution not found", nil)
			return
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toSagaResponse(exec, steps), nil)
}
