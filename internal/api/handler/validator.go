package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// normalizer is implemented by request types that rewrite free-form input
// into canonical values before validation.
type normalizer interface {
	Normalize()
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// enumRule is a custom tag backed by a domain membership check.
type enumRule struct {
	valid   func(string) bool
	allowed []string
}

func statusNames() []string {
	out := make([]string, len(domain.ProjectStatuses))
	for i, s := range domain.ProjectStatuses {
		out[i] = string(s)
	}
	return out
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

var enumRules = map[string]enumRule{
	"projecttype": {domain.ValidProjectType, domain.ProjectTypes},
	"budget":      {domain.ValidBudget, nonEmpty(domain.Budgets)},
	"timeline":    {domain.ValidTimeline, nonEmpty(domain.Timelines)},
	"category":    {domain.ValidCategory, domain.Categories},
	"categoryfilter": {
		func(s string) bool { return s == domain.CategoryAll || domain.ValidCategory(s) },
		append([]string{domain.CategoryAll}, domain.Categories...),
	},
	"projectstatus": {
		func(s string) bool { return domain.ProjectStatus(s).Valid() },
		statusNames(),
	},
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	for tag, rule := range enumRules {
		valid := rule.valid
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return &echoValidator{v: v}
}

// fieldName reports fields by their wire name so messages match the payload.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if n, ok := i.(normalizer); ok {
		n.Normalize()
	}
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	if rule, ok := enumRules[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(rule.allowed, ", "))
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please provide a valid email"
	case "eqfield":
		return "Passwords do not match"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url", "http_url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
