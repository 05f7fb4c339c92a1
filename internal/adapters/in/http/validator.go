package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// requestValidator checks request DTOs against their validate tags and reports
// violations as an errs.ValidationError keyed by JSON field name.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		param := fieldPath(fe)
		if fe.Tag() == "required" {
			problems = append(problems, errs.NewValueIsRequiredError(param))
			continue
		}
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("failed %q rule", fe.Tag())))
	}
	return errs.NewValidationError(problems...)
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// fieldPath drops the root struct name from the namespace: "pickup.latitude".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}
