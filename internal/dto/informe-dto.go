package dto

type VisitaReportQueryDTO struct {
	Desde     string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta     string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	TecnicoID uint64 `query:"tecnico_id" validate:"omitempty,gt=0"`
}
