package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre del tag json (o query) en vez del campo Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// validationError payload inválido con detalle por campo. Envuelve domain.ErrValidation.
type validationError struct {
	msg     string
	details map[string]string
}

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return domain.ErrValidation }

// parseBody decodifica el JSON del body y valida los tags.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &validationError{msg: "cuerpo inválido", details: bodyDetails(err)}
	}
	return validateStruct(dst)
}

// parseQuery decodifica y valida los parámetros de la query string.
func parseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return &validationError{msg: "parámetros inválidos", details: map[string]string{"query": err.Error()}}
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &validationError{msg: "datos inválidos", details: map[string]string{"payload": err.Error()}}
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	return &validationError{msg: "datos inválidos", details: details}
}

func bodyDetails(err error) map[string]string {
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.As(err, &ute):
		return map[string]string{ute.Field: "tipo inválido"}
	case errors.As(err, &se):
		return map[string]string{"payload": "JSON inválido"}
	default:
		return map[string]string{"payload": err.Error()}
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "required_with":
		return "es obligatorio junto con " + strings.ToLower(fe.Param())
	case "email":
		return "debe ser un email válido"
	case "url":
		return "debe ser una URL válida"
	case "uuid":
		return "debe ser un UUID"
	case "ip":
		return "debe ser una dirección IP"
	case "oneof":
		return "debe ser uno de: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min", "gte":
		return "mínimo " + fe.Param()
	case "max", "lte":
		return "máximo " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	default:
		return fmt.Sprintf("no cumple la regla %q", fe.Tag())
	}
}
