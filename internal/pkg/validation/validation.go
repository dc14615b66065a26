package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"unihub/internal/core/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct validates a request DTO and returns a bad.request AppError listing every failing field
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fieldMessage(fe))
	}
	return domain.Validation(fields...)
}

// fieldMessage renders a field error as "<field>.<reason>"
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + ".must.not.be.null"
	case "email":
		return field + ".must.be.email"
	case "min":
		if fe.Kind() == reflect.String {
			return field + ".too.short"
		}
		return field + ".out.of.range"
	case "max":
		if fe.Kind() == reflect.String {
			return field + ".too.long"
		}
		return field + ".out.of.range"
	case "gt", "gte", "lt", "lte":
		return field + ".out.of.range"
	case "oneof":
		return field + ".invalid.value"
	default:
		return field + ".invalid"
	}
}
