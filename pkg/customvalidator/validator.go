package customvalidator

import (
	"reflect"
	"regexp"

	"clinical-service/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

var serialRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-]{3,39}$`)

// RegisterCustomValidations registra las reglas propias y el soporte de null.*.
func RegisterCustomValidations(v *validator.Validate) error {
	registerNullTypes(v)

	if err := v.RegisterValidation("estado", isKnownEstado); err != nil {
		return err
	}
	if err := v.RegisterValidation("serial", isSerial); err != nil {
		return err
	}
	if err := v.RegisterValidation("prioridad", isPrioridad); err != nil {
		return err
	}
	return nil
}

func isKnownEstado(fl validator.FieldLevel) bool {
	return constants.Estado(fl.Field().String()).Valid()
}

func isSerial(fl validator.FieldLevel) bool {
	return serialRegex.MatchString(fl.Field().String())
}

func isPrioridad(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constants.PrioridadBaja, constants.PrioridadMedia, constants.PrioridadAlta, constants.PrioridadCritica:
		return true
	}
	return false
}

// registerNullTypes permite validar el valor interno de null.String / null.Time.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Uint64); ok && val.Valid {
			return val.Uint64
		}
		return nil
	}, null.Uint64{})
}
