package middleware

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientreg/internal/core/apperror"
	"github.com/martijn/clientreg/internal/core/domain"
	"github.com/martijn/clientreg/internal/validator"
)

const (
	clientIDKey    = "client_id"
	phoneNumberKey = "phone_number"
	phonesKey      = "phones"
	clientInputKey = "client_input"
	clientPatchKey = "client_patch"
	cursorKey      = "cursor"
	filterKey      = "client_filter"
	bodyKey        = "json_body"
)

// ValidateID validates the :id path parameter.
func ValidateID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validator.ID(c.Param("id"))
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(clientIDKey, id)
		c.Next()
	}
}

// ValidatePhoneParam validates the :number path parameter.
func ValidatePhoneParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := validator.PhoneParam(c.Param("number"))
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(phoneNumberKey, number)
		c.Next()
	}
}

// ValidatePhonesBody validates the phones array of the request body.
func ValidatePhonesBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := jsonBody(c)
		if err != nil {
			abort(c, err)
			return
		}
		phones, err := validator.Phones(body["phones"])
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(phonesKey, phones)
		c.Next()
	}
}

func ValidateCreateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := jsonBody(c)
		if err != nil {
			abort(c, err)
			return
		}
		input, err := validator.CreateClient(body)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(clientInputKey, input)
		c.Next()
	}
}

func ValidateUpdateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := jsonBody(c)
		if err != nil {
			abort(c, err)
			return
		}
		patch, err := validator.UpdateClient(body)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(clientPatchKey, patch)
		c.Next()
	}
}

// ValidatePagination validates limit, page, sort and order query parameters.
func ValidatePagination() gin.HandlerFunc {
	return func(c *gin.Context) {
		cursor, err := validator.Pagination(c.Request.URL.Query())
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(cursorKey, cursor)
		c.Next()
	}
}

// ValidateListFilter validates the optional list filters. It expects
// ValidatePagination to run first and attaches the cursor to the filter.
func ValidateListFilter() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := validator.ListFilter(c.Request.URL.Query())
		if err != nil {
			abort(c, err)
			return
		}
		filter.Cursor = Cursor(c)
		c.Set(filterKey, filter)
		c.Next()
	}
}

func ClientID(c *gin.Context) int64 {
	return c.GetInt64(clientIDKey)
}

func PhoneNumber(c *gin.Context) string {
	return c.GetString(phoneNumberKey)
}

func Phones(c *gin.Context) []string {
	return c.GetStringSlice(phonesKey)
}

func ClientInput(c *gin.Context) *domain.ClientInput {
	v, _ := c.Get(clientInputKey)
	input, _ := v.(*domain.ClientInput)
	return input
}

func ClientPatch(c *gin.Context) *domain.ClientPatch {
	v, _ := c.Get(clientPatchKey)
	patch, _ := v.(*domain.ClientPatch)
	return patch
}

// Cursor returns the validated cursor, or the default one when pagination was
// not validated on this route.
func Cursor(c *gin.Context) *domain.Cursor {
	v, _ := c.Get(cursorKey)
	if cursor, ok := v.(*domain.Cursor); ok {
		return cursor
	}
	return domain.NewCursor(domain.DefaultLimit, domain.DefaultPage, domain.SortByID, domain.OrderAsc)
}

func ListFilter(c *gin.Context) *domain.ClientFilter {
	v, _ := c.Get(filterKey)
	if filter, ok := v.(*domain.ClientFilter); ok {
		return filter
	}
	return &domain.ClientFilter{Cursor: Cursor(c)}
}

// jsonBody decodes the request body once per request. An empty body reads as
// an empty object.
func jsonBody(c *gin.Context) (map[string]interface{}, error) {
	if v, ok := c.Get(bodyKey); ok {
		return v.(map[string]interface{}), nil
	}

	body := map[string]interface{}{}
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, apperror.Wrap(apperror.KindValidation, "Invalid JSON body", err)
		}
	}
	if body == nil {
		body = map[string]interface{}{}
	}

	c.Set(bodyKey, body)
	return body, nil
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
