package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Besides the built-in tags it understands role, campaign_type,
// campaign_status, task_status and task_priority.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enums := map[string]func(string) bool{
		"role":            func(s string) bool { return domain.Role(s).Valid() },
		"campaign_type":   func(s string) bool { return domain.CampaignType(s).Valid() },
		"campaign_status": func(s string) bool { return domain.CampaignStatus(s).Valid() },
		"task_status":     func(s string) bool { return domain.TaskStatus(s).Valid() },
		"task_priority":   func(s string) bool { return domain.TaskPriority(s).Valid() },
	}
	for tag, valid := range enums {
		valid := valid
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures wrap
// domain.ErrValidation with one message per field.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "role":
		return fmt.Sprintf("%s must be one of: %s", field, joinEnum(domain.AllRoles()))
	case "campaign_type":
		return fmt.Sprintf("%s must be one of: %s", field, joinEnum(domain.AllCampaignTypes()))
	case "campaign_status":
		return fmt.Sprintf("%s must be one of: %s", field, joinEnum(domain.AllCampaignStatuses()))
	case "task_status":
		return fmt.Sprintf("%s must be one of: %s", field, joinEnum(domain.AllTaskStatuses()))
	case "task_priority":
		return fmt.Sprintf("%s must be one of: %s", field, joinEnum(domain.AllTaskPriorities()))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
