package dto

type CreateSolicitudServicioDTO struct {
	EquipoID    uint64 `json:"equipo_id" validate:"required,gt=0"`
	Descripcion string `json:"descripcion" validate:"required,max=2000"`
	Prioridad   string `json:"prioridad" validate:"required,prioridad"`
}

type UpdateSolicitudServicioDTO struct {
	Descripcion *string `json:"descripcion,omitempty" validate:"omitempty,max=2000"`
	Prioridad   *string `json:"prioridad,omitempty" validate:"omitempty,prioridad"`
}
