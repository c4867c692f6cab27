package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientreg/internal/api/dto"
	"github.com/martijn/clientreg/internal/api/middleware"
	"github.com/martijn/clientreg/internal/core/repository"
)

type PhoneHandler struct {
	clientRepo repository.ClientRepository
}

func NewPhoneHandler(clientRepo repository.ClientRepository) *PhoneHandler {
	return &PhoneHandler{clientRepo: clientRepo}
}

// AddPhones handles POST /clients/:id/phones
//
//	@Summary	Attach phone numbers to a client
//	@Tags		phones
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Client id"
//	@Param		phones	body		dto.PhonesRequest	true	"Numbers to add"
//	@Success	201		{object}	dto.PhonesAddResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/clients/{id}/phones [post]
func (h *PhoneHandler) AddPhones(c *gin.Context) {
	added, err := h.clientRepo.AddPhones(c.Request.Context(), middleware.ClientID(c), middleware.Phones(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.PhonesAddResponse{
		Added:   added,
		Message: "Numbers added successfully",
	})
}

// DeletePhone handles DELETE /clients/:id/phones/:number
//
//	@Summary	Remove one phone number of a client
//	@Tags		phones
//	@Produce	json
//	@Param		id		path		int		true	"Client id"
//	@Param		number	path		string	true	"Phone number"
//	@Success	200		{object}	dto.PhoneDeleteResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/clients/{id}/phones/{number} [delete]
func (h *PhoneHandler) DeletePhone(c *gin.Context) {
	number, err := h.clientRepo.DeletePhone(c.Request.Context(), middleware.ClientID(c), middleware.PhoneNumber(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PhoneDeleteResponse{
		Deleted: true,
		Number:  number,
		Message: "Number deleted successfully",
	})
}

// DeleteAllPhones handles DELETE /clients/:id/phones
//
//	@Summary	Remove every phone number of a client
//	@Tags		phones
//	@Produce	json
//	@Param		id	path		int	true	"Client id"
//	@Success	200	{object}	dto.PhonesDeleteResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/clients/{id}/phones [delete]
func (h *PhoneHandler) DeleteAllPhones(c *gin.Context) {
	result, err := h.clientRepo.DeleteAllPhones(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	numbers := result.Numbers
	if numbers == nil {
		numbers = []string{}
	}

	message := "Client has no phone numbers"
	if result.Deleted > 0 {
		message = "All phone numbers deleted successfully"
	}

	c.JSON(http.StatusOK, dto.PhonesDeleteResponse{
		Deleted: result.Deleted,
		Numbers: numbers,
		Message: message,
	})
}
