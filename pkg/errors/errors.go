package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT y tokens
	ErrInvalidSigningMethod = errors.New("método de firma del token inválido")
	ErrInvalidToken         = errors.New("token inválido")
	ErrTokenExpired         = errors.New("el token ha expirado")
	ErrTokenNotYetValid     = errors.New("el token aún no es válido")
	ErrTokenIsNotAccess     = errors.New("el token no es de acceso")
	ErrTokenIsNotRefresh    = errors.New("el token no es de refresco")

	// Autorización
	ErrEmptyAuthHeader    = errors.New("falta el encabezado de autorización")
	ErrInvalidAuthHeader  = errors.New("formato del encabezado de autorización inválido")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrTooManyAttempts    = errors.New("demasiados intentos fallidos, intente más tarde")

	// Contexto
	ErrUserIDNotFoundInContext = errors.New("UserID no encontrado en el contexto de la petición")

	// Dominio
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrOutsideGeofence   = errors.New("fuera del radio permitido de la orden de servicio")
	ErrVisitMismatch     = errors.New("la visita no pertenece a la orden escaneada")

	// Generales
	ErrNotFound       = errors.New("registro no encontrado")
	ErrBadRequest     = errors.New("petición inválida")
	ErrConflict       = errors.New("conflicto con el estado actual del registro")
	ErrInternalServer = errors.New("error interno del servidor")
)

// HttpError lleva el código HTTP y los detalles que se devuelven al cliente.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// StatusCode resuelve el código HTTP para errores centinela conocidos.
func StatusCode(err error) int {
	var httpErr *HttpError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrVisitMismatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrOutsideGeofence):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrUserIDNotFoundInContext),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenNotYetValid),
		errors.Is(err, ErrTokenIsNotAccess),
		errors.Is(err, ErrTokenIsNotRefresh),
		errors.Is(err, ErrInvalidSigningMethod):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Is(target error) bool { return target == ErrBadRequest }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
