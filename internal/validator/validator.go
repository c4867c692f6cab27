// Package validator normalizes raw request input before it reaches the
// repository. Every function is pure: it either returns a typed value or an
// operational validation error, and never touches the store.
package validator

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/martijn/clientreg/internal/core/apperror"
	"github.com/martijn/clientreg/internal/core/domain"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ID parses a path segment as a strictly positive integer.
func ID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid id parameter")
	}
	return id, nil
}

// Phones requires a non-empty array of non-blank strings.
func Phones(raw interface{}) ([]string, error) {
	list, ok := raw.([]interface{})
	if !ok || len(list) == 0 {
		return nil, apperror.Validation("Invalid phones array")
	}

	phones := make([]string, 0, len(list))
	for _, item := range list {
		phone, ok := item.(string)
		if !ok || strings.TrimSpace(phone) == "" {
			return nil, apperror.Validation("Invalid phone value")
		}
		phones = append(phones, phone)
	}
	return phones, nil
}

func PhoneParam(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperror.Validation("Invalid phone parameter")
	}
	return raw, nil
}

// CreateClient validates a create body and fills in defaults: state=true and
// an empty phone list.
func CreateClient(body map[string]interface{}) (*domain.ClientInput, error) {
	name, err := validateName(body["name"])
	if err != nil {
		return nil, err
	}

	email, err := validateEmail(body["email"])
	if err != nil {
		return nil, err
	}

	input := &domain.ClientInput{
		Name:   name,
		Email:  email,
		State:  true,
		Phones: []string{},
	}

	if raw, ok := body["state"]; ok {
		state, err := validateState(raw)
		if err != nil {
			return nil, err
		}
		input.State = state
	}

	if raw, ok := body["phones"]; ok {
		phones, err := Phones(raw)
		if err != nil {
			return nil, err
		}
		input.Phones = phones
	}

	return input, nil
}

// UpdateClient validates a partial update. Only keys present in body end up
// in the patch.
func UpdateClient(body map[string]interface{}) (*domain.ClientPatch, error) {
	_, hasName := body["name"]
	_, hasEmail := body["email"]
	_, hasState := body["state"]
	if !hasName && !hasEmail && !hasState {
		return nil, apperror.Validation("No fields to update")
	}

	patch := &domain.ClientPatch{}

	if hasName {
		name, err := validateName(body["name"])
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}

	if hasEmail {
		email, err := validateEmail(body["email"])
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	if hasState {
		state, err := validateState(body["state"])
		if err != nil {
			return nil, err
		}
		patch.State = &state
	}

	return patch, nil
}

func validateName(raw interface{}) (string, error) {
	name, ok := raw.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return "", apperror.Validation("Invalid name")
	}

	name = strings.TrimSpace(name)
	if len(strings.Fields(name)) < 2 {
		return "", apperror.Validation("Name must include first and last name")
	}
	return name, nil
}

func validateEmail(raw interface{}) (string, error) {
	email, ok := raw.(string)
	if !ok || strings.TrimSpace(email) == "" {
		return "", apperror.Validation("Invalid email")
	}

	email = strings.TrimSpace(email)
	if !emailRegex.MatchString(email) {
		return "", apperror.Validation("Invalid email format")
	}
	return strings.ToLower(email), nil
}

func validateState(raw interface{}) (bool, error) {
	state, ok := raw.(bool)
	if !ok {
		return false, apperror.Validation("Invalid state value")
	}
	return state, nil
}

// Pagination reads limit, page, sort and order, applying the documented
// defaults for anything absent.
func Pagination(query url.Values) (*domain.Cursor, error) {
	limit := domain.DefaultLimit
	if query.Has("limit") {
		n, err := strconv.Atoi(query.Get("limit"))
		if err != nil || n <= 0 {
			return nil, apperror.Validation("Invalid limit")
		}
		limit = n
	}

	page := domain.DefaultPage
	if query.Has("page") {
		n, err := strconv.Atoi(query.Get("page"))
		if err != nil || n <= 0 {
			return nil, apperror.Validation("Invalid page")
		}
		page = n
	}

	order := domain.OrderAsc
	if raw := query.Get("order"); raw != "" {
		o, ok := domain.ParseSortOrder(strings.ToLower(raw))
		if !ok {
			return nil, apperror.Validation("Invalid order type")
		}
		order = o
	}

	sort := domain.SortByID
	if query.Has("sort") {
		s, ok := domain.ParseSortField(query.Get("sort"))
		if !ok {
			return nil, apperror.Validation("Invalid sort field")
		}
		sort = s
	}

	// page 1 has no offset; past that, (page-1)*limit must fit in an int
	if page > 1 && page-1 > math.MaxInt/limit {
		return nil, apperror.Validation("Invalid page")
	}

	return domain.NewCursor(limit, page, sort, order), nil
}

// ListFilter reads the optional state, id, before and after filters of a
// client listing.
func ListFilter(query url.Values) (*domain.ClientFilter, error) {
	filter := &domain.ClientFilter{}

	if query.Has("state") {
		var state bool
		switch query.Get("state") {
		case "true":
			state = true
		case "false":
			state = false
		default:
			return nil, apperror.Validation("Invalid state filter")
		}
		filter.State = &state
	}

	if query.Has("id") {
		id, err := strconv.ParseInt(query.Get("id"), 10, 64)
		if err != nil || id <= 0 {
			return nil, apperror.Validation("Invalid id filter")
		}
		filter.ID = &id
	}

	if query.Has("before") {
		before, err := domain.ParseDate(query.Get("before"))
		if err != nil {
			return nil, apperror.Validation("Invalid before date")
		}
		filter.Before = &before
	}

	if query.Has("after") {
		after, err := domain.ParseDate(query.Get("after"))
		if err != nil {
			return nil, apperror.Validation("Invalid after date")
		}
		filter.After = &after
	}

	return filter, nil
}
