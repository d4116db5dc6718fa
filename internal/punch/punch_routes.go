package punch

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	ponto := rg.Group("/ponto")
	{
		ponto.POST("/registros", h.Register)
		ponto.PUT("/registros/:id", h.Update)
	}
}
