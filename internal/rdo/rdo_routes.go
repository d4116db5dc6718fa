package rdo

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rdos := rg.Group("/rdos")
	{
		rdos.POST("", h.Create)
		rdos.GET("/sagas/:id", h.SagaStatus)
	}
}
