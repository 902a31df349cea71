// Package validation envuelve go-playground/validator con una instancia única
// y errores por campo listos para serializar.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError es un error de validación de un campo, con el nombre JSON del campo.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error agrupa los errores de validación de una estructura.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Get devuelve el validador compartido. Usa el tag json (o form) como nombre de campo.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
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
	})
	return validate
}

// Struct valida s. Devuelve nil o *Error.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Rule: "unknown", Message: err.Error()}}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: translate(fe),
		})
	}
	return &Error{Fields: out}
}

// Var valida un valor suelto con las reglas dadas (p.ej. "required,email").
func Var(field string, v any, rules string) error {
	err := Get().Var(v, rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Fields: []FieldError{{Field: field, Rule: "unknown", Message: err.Error()}}}
	}
	fe := verrs[0]
	return &Error{Fields: []FieldError{{
		Field:   field,
		Rule:    fe.Tag(),
		Message: fmt.Sprintf(messageFor(fe.Tag(), fe.Param(), fe.Kind() == reflect.String), field),
	}}}
}

// Fields extrae los errores por campo si err es (o envuelve) un *Error.
func Fields(err error) []FieldError {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

func translate(fe validator.FieldError) string {
	return fmt.Sprintf(messageFor(fe.Tag(), fe.Param(), fe.Kind() == reflect.String), fe.Field())
}

func messageFor(tag, param string, isString bool) string {
	switch tag {
	case "required":
		return "%s es requerido"
	case "email":
		return "%s debe ser un correo electrónico válido"
	case "oneof":
		return "%s debe ser uno de: " + param
	case "gt":
		return "%s debe ser mayor que " + param
	case "gte":
		return "%s debe ser mayor o igual que " + param
	case "lte":
		return "%s debe ser menor o igual que " + param
	case "min":
		if isString {
			return "%s debe tener al menos " + param + " caracteres"
		}
		return "%s debe ser al menos " + param
	case "max":
		if isString {
			return "%s debe tener como máximo " + param + " caracteres"
		}
		return "%s debe ser como máximo " + param
	default:
		return "%s no cumple la regla " + tag
	}
}
