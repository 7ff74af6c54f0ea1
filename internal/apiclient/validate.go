package apiclient

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/flowpilot/portal-go/internal/crypto"
	"github.com/flowpilot/portal-go/internal/model"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("slug", slugValidator); err != nil {
		panic(err)
	}
	return v
}

func slugValidator(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

// jsonFieldName reports fields by their wire name so details line up with
// what the backend would return.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// check validates req and returns its field failures in declaration order.
func check(req any) []model.FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.FieldError{{Field: "request", Message: "is invalid"}}
	}

	details := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, model.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return details
}

// checkWithPassword validates req and applies the password policy to senha.
func checkWithPassword(req any, senha string) []model.FieldError {
	details := check(req)
	if senha == "" {
		return details
	}
	if err := crypto.CheckPassword(senha); err != nil {
		details = append(details, model.FieldError{Field: "senha", Message: err.Error()})
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "slug":
		return "must contain only lowercase letters, numbers and hyphens"
	default:
		return "is invalid"
	}
}

// rejected builds the envelope for input that never reaches the network.
func rejected[T any](details []model.FieldError) model.Response[T] {
	return model.Fail[T](model.ValidationFailure(details))
}
