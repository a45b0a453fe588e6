package serverutils

import (
	"fmt"
	"strings"

	"adorder-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and reports every failing field
// as a single InvalidArgument error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.InvalidArgument(err.Error())
	}

	fields := make(map[string]interface{}, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg := describe(fe)
		fields[fe.Field()] = msg
		messages = append(messages, fmt.Sprintf("%s %s", fe.Field(), msg))
	}

	appErr := apperror.InvalidArgument(strings.Join(messages, "; "))
	appErr.Details = map[string]interface{}{"fields": fields}
	return appErr
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// ParseBody decodes the request body into out and validates it.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	return ValidateRequest(out)
}
