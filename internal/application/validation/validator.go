// Package validation valida DTOs con las etiquetas `validate` y traduce los
// errores a domain.ValidationError (un mensaje por campo, nombre según json).
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jhoicas/Mercado-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct valida s y devuelve *domain.ValidationError si alguna regla falla.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "email inválido"
	case "uuid":
		return "identificador inválido"
	case "min":
		return "longitud mínima " + fe.Param()
	case "max":
		return "longitud máxima " + fe.Param()
	case "datetime":
		return "fecha inválida, formato YYYY-MM-DD"
	case "oneof":
		return "valor no permitido, use uno de: " + fe.Param()
	default:
		return "valor inválido"
	}
}

// ID comprueba que id sea un UUID. Un id mal formado no puede existir: se reporta como ErrNotFound.
func ID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return nil
}

// Date interpreta una fecha YYYY-MM-DD ya validada por Struct.
func Date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
