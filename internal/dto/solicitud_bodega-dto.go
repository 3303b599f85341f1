package dto

type SolicitudBodegaItemDTO struct {
	Codigo      string `json:"codigo" validate:"required,max=50"`
	Descripcion string `json:"descripcion" validate:"required,max=500"`
	Cantidad    int    `json:"cantidad" validate:"required,gt=0"`
}

type CreateSolicitudBodegaDTO struct {
	OrdenID *uint64                  `json:"orden_id,omitempty" validate:"omitempty,gt=0"`
	Motivo  string                   `json:"motivo" validate:"required,max=1000"`
	Items   []SolicitudBodegaItemDTO `json:"items" validate:"required,min=1,dive"`
}
