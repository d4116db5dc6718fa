package punch

import (
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

func (h *Handler) Register(c *gin.Context) {
	var req punchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	in, err := req.toInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "data must be YYYY-MM-DD", nil)
		return
	}

	rec, err := h.service.Register(c.Request.Context(), c.GetInt64("tenant_id"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toResponse(rec), nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid id", nil)
		return
	}

	var req punchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	in, err := req.toInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "data must be YYYY-MM-DD", nil)
		return
	}

	rec, err := h.service.Update(c.Request.Context(), c.GetInt64("tenant_id"), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponse(rec), nil)
}
