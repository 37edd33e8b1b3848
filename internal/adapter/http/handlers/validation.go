package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"order_management/pkg"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName makes validator report the wire name ("amount_cents") instead of the Go field name.
func jsonFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// bindingError turns a ShouldBind* failure into a 400 carrying one message per offending field.
func bindingError(err error) *pkg.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		return pkg.NewDomainError("VALIDATION_ERROR", "Invalid request", err, http.StatusBadRequest).WithFields(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return pkg.NewDomainError("VALIDATION_ERROR", "Invalid request", err, http.StatusBadRequest).
			WithFields(map[string]string{typeErr.Field: "must be of type " + typeErr.Type.String()})
	}

	return pkg.NewDomainError("INVALID_REQUEST", "Invalid request body", err, http.StatusBadRequest)
}

// fieldPath drops the root struct name: "CreateOrderRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "is invalid"
	}
}

func fieldError(code, field, message string) *pkg.AppError {
	return pkg.NewDomainErrorSimple(code, "Invalid request", http.StatusBadRequest).
		WithFields(map[string]string{field: message})
}
