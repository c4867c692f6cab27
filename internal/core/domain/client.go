package domain

import "strings"

type Client struct {
	ID           int64  `db:"id_client"`
	FirstName    string `db:"c_name"`
	LastName     string `db:"c_lastname"`
	Email        string `db:"email"`
	RegisterDate Date   `db:"register"`
	State        bool   `db:"c_state"`
}

// FullName joins first and last name the way they were submitted.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ClientWithPhones is a client row grouped with every number it owns.
type ClientWithPhones struct {
	Client
	Phones []string
}

// ClientInput is a validated, normalized create request.
type ClientInput struct {
	Name   string
	Email  string
	State  bool
	Phones []string
}

// ClientPatch carries the fields of a partial update. Nil means "leave untouched".
type ClientPatch struct {
	Name  *string
	Email *string
	State *bool
}

func (p *ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.State == nil
}

// DeletedClient is the snapshot returned by a cascading client delete.
type DeletedClient struct {
	Client
	Phones []string
}

// SplitName returns the first and second whitespace separated tokens of name.
// Anything after the second token is dropped.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
