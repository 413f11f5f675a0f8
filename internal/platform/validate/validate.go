package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/pkg/respond"
)

// FieldType selects the format check applied to a field value.
type FieldType string

const (
	TypeAny         FieldType = "any"
	TypeString      FieldType = "string"
	TypeNumber      FieldType = "number"
	TypeEmail       FieldType = "email"
	TypeDate        FieldType = "date" // YYYY-MM-DD
	TypeTime        FieldType = "time" // HH:MM
	TypeStringArray FieldType = "string_array"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	timeRe  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Rule is a declarative constraint on one request-body field.
type Rule struct {
	Field    string
	Required bool
	Type     FieldType
	Enum     []string
	MinLen   int
	// Items applies a format check to each element of a string array.
	Items FieldType
}

// FieldError is one entry of the 400 response's error list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Body evaluates the rules against the JSON request body before the handler
// runs. Any violation short-circuits with 400 and the full list of field
// errors; the body is restored so the handler can still bind it.
func Body(rules ...Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unable to read request body")
			}
			c.Request().Body = io.NopCloser(bytes.NewReader(raw))

			fields := map[string]interface{}{}
			if len(bytes.TrimSpace(raw)) > 0 {
				if err := json.Unmarshal(raw, &fields); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
				}
			}

			var errs []FieldError
			for _, rule := range rules {
				if fe := rule.check(fields); fe != nil {
					errs = append(errs, *fe)
				}
			}
			if len(errs) > 0 {
				return respond.ValidationFailed(c, errs)
			}

			return next(c)
		}
	}
}

func (r Rule) check(fields map[string]interface{}) *FieldError {
	value, present := fields[r.Field]
	if !present || value == nil {
		if r.Required {
			return r.fail("%s is required")
		}
		return nil
	}

	switch r.Type {
	case TypeString, "":
		s, ok := value.(string)
		if !ok {
			return r.fail("%s must be a string")
		}
		if r.Required && s == "" {
			return r.fail("%s is required")
		}
		if r.MinLen > 0 && len(s) < r.MinLen {
			return &FieldError{Field: r.Field, Message: fmt.Sprintf("%s must be at least %d characters long", r.Field, r.MinLen)}
		}
		if len(r.Enum) > 0 && !contains(r.Enum, s) {
			return &FieldError{Field: r.Field, Message: fmt.Sprintf("%s must be one of %v", r.Field, r.Enum)}
		}

	case TypeNumber:
		if _, ok := value.(float64); !ok {
			return r.fail("%s must be a number")
		}

	case TypeEmail:
		s, ok := value.(string)
		if !ok || !emailRe.MatchString(s) {
			return r.fail("Valid email is required for %s")
		}

	case TypeDate:
		s, ok := value.(string)
		if !ok {
			return r.fail("Valid date is required for %s")
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return r.fail("Valid date is required for %s")
		}

	case TypeTime:
		s, ok := value.(string)
		if !ok || !timeRe.MatchString(s) {
			return r.fail("Valid time is required for %s (HH:MM)")
		}

	case TypeStringArray:
		arr, ok := value.([]interface{})
		if !ok {
			return r.fail("%s must be an array")
		}
		if r.Required && len(arr) == 0 {
			return r.fail("%s must not be empty")
		}
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				return r.fail("%s must contain only strings")
			}
			if r.Items == TypeTime && !timeRe.MatchString(s) {
				return r.fail("%s must contain HH:MM times")
			}
		}
	}

	return nil
}

func (r Rule) fail(format string) *FieldError {
	return &FieldError{Field: r.Field, Message: fmt.Sprintf(format, r.Field)}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
