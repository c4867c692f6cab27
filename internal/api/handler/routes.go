package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/martijn/clientreg/internal/api/middleware"
)

// RegisterClientRoutes mounts the client and phone endpoints under /clients.
func RegisterClientRoutes(r gin.IRouter, clientHandler *ClientHandler, phoneHandler *PhoneHandler) {
	validID := middleware.ValidateID()

	clients := r.Group("/clients")
	{
		clients.GET("", middleware.ValidatePagination(), middleware.ValidateListFilter(), clientHandler.ListClients)
		clients.GET("/phones", clientHandler.ListClientsWithPhones)
		clients.POST("", middleware.ValidateCreateClient(), clientHandler.CreateClient)
		clients.PUT("/:id", validID, middleware.ValidateUpdateClient(), clientHandler.UpdateClient)
		clients.DELETE("/:id", validID, clientHandler.DeleteClient)

		clients.POST("/:id/phones", validID, middleware.ValidatePhonesBody(), phoneHandler.AddPhones)
		clients.DELETE("/:id/phones", validID, phoneHandler.DeleteAllPhones)
		clients.DELETE("/:id/phones/:number", validID, middleware.ValidatePhoneParam(), phoneHandler.DeletePhone)
	}
}
