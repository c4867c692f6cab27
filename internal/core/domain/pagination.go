package domain

import "fmt"

type SortField string

const (
	SortByRegister SortField = "register"
	SortByEmail    SortField = "email"
	SortByName     SortField = "name"
	SortByID       SortField = "id"
)

// SortFields lists every accepted sort key, in the order they are documented.
var SortFields = []SortField{SortByRegister, SortByEmail, SortByName, SortByID}

// Column maps the sort key to its column. Only these values are ever
// interpolated into ORDER BY.
func (f SortField) Column() (string, error) {
	switch f {
	case SortByRegister:
		return "register", nil
	case SortByEmail:
		return "email", nil
	case SortByName:
		return "c_name", nil
	case SortByID:
		return "id_client", nil
	}
	return "", fmt.Errorf("unknown sort field: %q", string(f))
}

func ParseSortField(s string) (SortField, bool) {
	for _, f := range SortFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func (o SortOrder) Keyword() (string, error) {
	switch o {
	case OrderAsc:
		return "ASC", nil
	case OrderDesc:
		return "DESC", nil
	}
	return "", fmt.Errorf("unknown sort order: %q", string(o))
}

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case OrderAsc, OrderDesc:
		return SortOrder(s), true
	}
	return "", false
}

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// Cursor windows and orders a single list query.
type Cursor struct {
	Limit int
	Page  int
	Sort  SortField
	Order SortOrder
}

func NewCursor(limit, page int, sort SortField, order SortOrder) *Cursor {
	return &Cursor{Limit: limit, Page: page, Sort: sort, Order: order}
}

// Offset is derived from Limit and Page and is never set directly.
func (c *Cursor) Offset() int {
	if c.Page < 1 {
		return 0
	}
	return (c.Page - 1) * c.Limit
}

// Pages returns ceil(total / limit).
func (c *Cursor) Pages(total int) int {
	if c.Limit <= 0 {
		return 0
	}
	pages := total / c.Limit
	if total%c.Limit != 0 {
		pages++
	}
	return pages
}

// ClientFilter narrows a client listing. Nil fields are not applied.
type ClientFilter struct {
	State  *bool
	ID     *int64
	Before *Date
	After  *Date
	Cursor *Cursor
}
