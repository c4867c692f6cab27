package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientreg/internal/api/dto"
	"github.com/martijn/clientreg/internal/api/middleware"
	"github.com/martijn/clientreg/internal/core/domain"
	"github.com/martijn/clientreg/internal/core/repository"
)

type ClientHandler struct {
	clientRepo repository.ClientRepository
}

func NewClientHandler(clientRepo repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo}
}

// ListClients handles GET /clients
//
//	@Summary	List clients
//	@Tags		clients
//	@Produce	json
//	@Param		limit	query		int		false	"Page size"	default(10)
//	@Param		page	query		int		false	"Page number"	default(1)
//	@Param		sort	query		string	false	"Sort field"	Enums(register, email, name, id)
//	@Param		order	query		string	false	"Sort order"	Enums(asc, desc)
//	@Param		state	query		bool	false	"Filter by state"
//	@Param		id		query		int		false	"Filter by id"
//	@Param		before	query		string	false	"Registered before (YYYY-MM-DD)"
//	@Param		after	query		string	false	"Registered after (YYYY-MM-DD)"
//	@Success	200		{object}	dto.ClientListResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	filter := middleware.ListFilter(c)

	clients, total, err := h.clientRepo.List(c.Request.Context(), *filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response := dto.ClientListResponse{
		Data: make([]dto.ClientResponse, len(clients)),
		Pagination: dto.PaginationInfo{
			Page:  filter.Cursor.Page,
			Limit: filter.Cursor.Limit,
			Total: total,
			Pages: filter.Cursor.Pages(total),
		},
	}
	for i, client := range clients {
		response.Data[i] = toClientResponse(client)
	}

	c.JSON(http.StatusOK, response)
}

// ListClientsWithPhones handles GET /clients/phones
//
//	@Summary	List every client with its phone numbers
//	@Tags		clients
//	@Produce	json
//	@Success	200	{array}	dto.ClientPhonesResponse
//	@Router		/clients/phones [get]
func (h *ClientHandler) ListClientsWithPhones(c *gin.Context) {
	clients, err := h.clientRepo.ListWithPhones(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response := make([]dto.ClientPhonesResponse, len(clients))
	for i, client := range clients {
		phones := client.Phones
		if phones == nil {
			phones = []string{}
		}
		response[i] = dto.ClientPhonesResponse{
			ID:     client.ID,
			Name:   client.FirstName,
			Email:  client.Email,
			Phones: phones,
		}
	}

	c.JSON(http.StatusOK, response)
}

// CreateClient handles POST /clients
//
//	@Summary	Create a client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		client	body		dto.CreateClientRequest	true	"Client"
//	@Success	201		{object}	dto.ClientCreateResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	id, err := h.clientRepo.Create(c.Request.Context(), middleware.ClientInput(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ClientCreateResponse{
		ID:      id,
		Message: "Client created successfully",
	})
}

// UpdateClient handles PUT /clients/:id
//
//	@Summary	Partially update a client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Client id"
//	@Param		client	body		dto.UpdateClientRequest	true	"Fields to change"
//	@Success	200		{object}	dto.ClientUpdateResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	updated, err := h.clientRepo.Update(c.Request.Context(), middleware.ClientID(c), middleware.ClientPatch(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := "No changes detected"
	if updated {
		message = "Client updated successfully"
	}

	c.JSON(http.StatusOK, dto.ClientUpdateResponse{
		Updated: updated,
		Message: message,
	})
}

// DeleteClient handles DELETE /clients/:id
//
//	@Summary	Delete a client and every phone number it owns
//	@Tags		clients
//	@Produce	json
//	@Param		id	path		int	true	"Client id"
//	@Success	200	{object}	dto.ClientDeleteResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	deleted, err := h.clientRepo.Delete(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	phones := deleted.Phones
	if phones == nil {
		phones = []string{}
	}

	c.JSON(http.StatusOK, dto.ClientDeleteResponse{
		Deleted: true,
		Client: dto.DeletedClientResponse{
			ID:           deleted.ID,
			FirstName:    deleted.FirstName,
			LastName:     deleted.LastName,
			Email:        deleted.Email,
			RegisterDate: deleted.RegisterDate,
			LastState:    deleted.State,
			PhoneNumbers: phones,
		},
		Message: "Client and linked phone numbers deleted successfully",
	})
}

func toClientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:           client.ID,
		FirstName:    client.FirstName,
		LastName:     client.LastName,
		Email:        client.Email,
		RegisterDate: client.RegisterDate,
		State:        client.State,
	}
}
