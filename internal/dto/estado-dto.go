package dto

import "clinical-service/pkg/constants"

// CambiarEstadoDTO acepta el código textual o el numérico heredado.
type CambiarEstadoDTO struct {
	Estado     constants.Estado `json:"estado" validate:"required,estado"`
	Comentario string           `json:"comentario,omitempty" validate:"omitempty,max=500"`
}
