package payroll

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, processGuard, closeGuard gin.HandlerFunc) {
	folha := rg.Group("/folha")
	{
		folha.POST("/processar", processGuard, h.Process)
		folha.POST("/fechamento", closeGuard, h.Close)
	}
}
