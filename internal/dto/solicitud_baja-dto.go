package dto

type CreateSolicitudBajaDTO struct {
	EquipoID      uint64 `json:"equipo_id" validate:"required,gt=0"`
	Motivo        string `json:"motivo" validate:"required,max=500"`
	Justificacion string `json:"justificacion" validate:"required,max=4000"`
}
