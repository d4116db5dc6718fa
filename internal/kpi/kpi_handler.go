package kpi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Get computes the bundle for one employee. The holiday calendar passed
// to the engine is the fixed national set for the years in range; query
// param feriados_extras accepts extra YYYY-MM-DD dates.
func (h *Handler) Get(c *gin.Context) {
	funcionarioID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid id", nil)
		return
	}

	inicio, err := time.Parse("2006-01-02", c.Query("inicio"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "inicio must be YYYY-MM-DD", nil)
		return
	}
	fim, err := time.Parse("2006-01-02", c.Query("fim"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "fim must be YYYY-MM-DD", nil)
		return
	}

	holidays := FixedNationalHolidaysRange(inicio, fim)
	for _, extra := range c.QueryArray("feriados_extras") {
		d, err := time.Parse("2006-01-02", extra)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "feriados_extras must be YYYY-MM-DD", nil)
			return
		}
		holidays.Add(d)
	}

	bundle, err := h.engine.Compute(c.Request.Context(), c.GetInt64("tenant_id"), funcionarioID, inicio, fim, holidays)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bundle, nil)
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	kpis := rg.Group("/kpis")
	{
		kpis.GET("/funcionarios/:id", h.Get)
	}
}
