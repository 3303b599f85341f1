package services

import (
	"context"
	"io"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/pkg/types"

	"github.com/xuri/excelize/v2"
)

type EquipoServiceInterface interface {
	GetAll(ctx context.Context, filter types.Filter) (Page[entities.Equipo], error)
	FindByID(ctx context.Context, id uint64) (*entities.Equipo, error)
	Create(ctx context.Context, payload dto.CreateEquipoDTO) (*entities.Equipo, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipoDTO) (*entities.Equipo, error)
	Delete(ctx context.Context, id uint64) error
}

type OrdenServicioServiceInterface interface {
	GetAll(ctx context.Context, filter types.Filter) (Page[entities.OrdenServicio], error)
	FindByID(ctx context.Context, id uint64) (*entities.OrdenServicio, error)
	FindByQRToken(ctx context.Context, token string) (*entities.OrdenServicio, error)
	Create(ctx context.Context, payload dto.CreateOrdenServicioDTO) (*entities.OrdenServicio, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateOrdenServicioDTO) (*entities.OrdenServicio, error)
	CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*entities.OrdenServicio, error)
	Delete(ctx context.Context, id uint64) error
}

type SolicitudServicioServiceInterface interface {
	GetAll(ctx context.Context, filter types.Filter) (Page[entities.SolicitudServicio], error)
	FindByID(ctx context.Context, id uint64) (*entities.SolicitudServicio, error)
	Create(ctx context.Context, payload dto.CreateSolicitudServicioDTO) (*entities.SolicitudServicio, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateSolicitudServicioDTO) (*entities.SolicitudServicio, error)
	CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*CambioEstadoSolicitud, error)
}

type VisitaServiceInterface interface {
	GetAll(ctx context.Context, filter types.Filter) (Page[entities.Visita], error)
	FindByID(ctx context.Context, id uint64) (*entities.Visita, error)
	Programar(ctx context.Context, payload dto.CreateVisitaDTO) (*entities.Visita, error)
	Cancelar(ctx context.Context, id uint64) (*entities.Visita, error)
	CheckIn(ctx context.Context, id uint64, payload dto.CheckInDTO) (*entities.Visita, error)
	CheckOut(ctx context.Context, id uint64, payload dto.CheckOutDTO) (*entities.Visita, error)
}

type SolicitudBodegaServiceInterface interface {
	GetAll(ctx context.Context, filter types.Filter) (Page[entities.SolicitudBodega], error)
	FindByID(ctx context.Context, id uint64) (*entities.SolicitudBodega, error)
	Create(ctx context.Context, payload dto.CreateSolicitudBodegaDTO) (*entities.SolicitudBodega, error)
	CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*entities.SolicitudBodega, error)
}

type SolicitudBajaServiceInterface interface {
	GetAll(ctx context.Context, filter types.Filter) (Page[entities.SolicitudBaja], error)
	FindByID(ctx context.Context, id uint64) (*entities.SolicitudBaja, error)
	Create(ctx context.Context, payload dto.CreateSolicitudBajaDTO) (*entities.SolicitudBaja, error)
	CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*entities.SolicitudBaja, error)
	AddEvidencia(ctx context.Context, id uint64, file io.Reader, fileName string) (*entities.Evidencia, error)
	DeleteEvidencia(ctx context.Context, solicitudID, evidenciaID uint64) error
}

type InformeServiceInterface interface {
	Resumen(ctx context.Context) (*entities.Resumen, error)
	Visitas(ctx context.Context, query dto.VisitaReportQueryDTO) ([]entities.VisitaReporteRow, error)
	VisitasWorkbook(ctx context.Context, query dto.VisitaReportQueryDTO) (*excelize.File, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenResponseDTO, error)
	Me(ctx context.Context) (*entities.Usuario, error)
}

var (
	_ EquipoServiceInterface            = (*EquipoService)(nil)
	_ OrdenServicioServiceInterface     = (*OrdenServicioService)(nil)
	_ SolicitudServicioServiceInterface = (*SolicitudServicioService)(nil)
	_ VisitaServiceInterface            = (*VisitaService)(nil)
	_ SolicitudBodegaServiceInterface   = (*SolicitudBodegaService)(nil)
	_ SolicitudBajaServiceInterface     = (*SolicitudBajaService)(nil)
	_ InformeServiceInterface           = (*InformeService)(nil)
	_ AuthServiceInterface              = (*AuthService)(nil)
)
