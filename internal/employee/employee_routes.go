package employee

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, adminOnly gin.HandlerFunc) {
	funcionarios := rg.Group("/funcionarios")
	{
		funcionarios.PUT("/:id/salario", adminOnly, h.UpdateSalary)
	}
}
