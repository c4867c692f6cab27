package dto

import "github.com/martijn/clientreg/internal/core/domain"

// CreateClientRequest documents the POST /clients body. Bodies are validated
// from raw JSON, so this type is only used for API docs.
type CreateClientRequest struct {
	Name   string   `json:"name" example:"John Doe"`
	Email  string   `json:"email" example:"john@example.com"`
	State  *bool    `json:"state,omitempty"`
	Phones []string `json:"phones,omitempty"`
}

// UpdateClientRequest documents the PUT /clients/:id body
type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	State *bool   `json:"state,omitempty"`
}

// PhonesRequest documents the POST /clients/:id/phones body
type PhonesRequest struct {
	Phones []string `json:"phones"`
}

// ClientResponse represents a client row
type ClientResponse struct {
	ID           int64       `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	RegisterDate domain.Date `json:"registerDate" swaggertype:"string" example:"2024-01-31"`
	State        bool        `json:"state"`
}

// ClientListResponse represents a page of clients
type ClientListResponse struct {
	Data       []ClientResponse `json:"data"`
	Pagination PaginationInfo   `json:"pagination"`
}

// ClientPhonesResponse represents a client grouped with its phone numbers
type ClientPhonesResponse struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Phones []string `json:"phones"`
}

type ClientCreateResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type ClientUpdateResponse struct {
	Updated bool   `json:"updated"`
	Message string `json:"message"`
}

type PhonesAddResponse struct {
	Added   int    `json:"added"`
	Message string `json:"message"`
}

type PhoneDeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Number  string `json:"number"`
	Message string `json:"message"`
}

type PhonesDeleteResponse struct {
	Deleted int      `json:"deleted"`
	Numbers []string `json:"numbers"`
	Message string   `json:"message"`
}

// DeletedClientResponse is the snapshot of a client removed with its phones
type DeletedClientResponse struct {
	ID           int64       `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	RegisterDate domain.Date `json:"registerDate" swaggertype:"string" example:"2024-01-31"`
	LastState    bool        `json:"lastState"`
	PhoneNumbers []string    `json:"phoneNumbers"`
}

type ClientDeleteResponse struct {
	Deleted bool                  `json:"deleted"`
	Client  DeletedClientResponse `json:"client"`
	Message string                `json:"message"`
}
