package services

import (
	"context"
	"fmt"
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/internal/events"
	"clinical-service/internal/repositories"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/constants"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/types"
	"clinical-service/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const solicitudesServicioCachePrefix = "solicitudes-servicio"

// CambioEstadoSolicitud trae la orden generada cuando la solicitud se aprueba.
type CambioEstadoSolicitud struct {
	Solicitud *entities.SolicitudServicio `json:"solicitud"`
	Orden     *entities.OrdenServicio     `json:"orden,omitempty"`
}

type SolicitudServicioService struct {
	*BaseService
	txManager           repositories.TxManagerInterface
	solicitudRepository repositories.SolicitudServicioRepositoryInterface
	ordenRepository     repositories.OrdenServicioRepositoryInterface
	equipoRepository    repositories.EquipoRepositoryInterface
}

func NewSolicitudServicioService(
	base *BaseService,
	txManager repositories.TxManagerInterface,
	solicitudRepository repositories.SolicitudServicioRepositoryInterface,
	ordenRepository repositories.OrdenServicioRepositoryInterface,
	equipoRepository repositories.EquipoRepositoryInterface,
) *SolicitudServicioService {
	return &SolicitudServicioService{
		BaseService:         base,
		txManager:           txManager,
		solicitudRepository: solicitudRepository,
		ordenRepository:     ordenRepository,
		equipoRepository:    equipoRepository,
	}
}

func (s *SolicitudServicioService) GetAll(ctx context.Context, filter types.Filter) (Page[entities.SolicitudServicio], error) {
	return memoize(ctx, s.BaseService, cache.Key(solicitudesServicioCachePrefix+":list", filter), func(ctx context.Context) (Page[entities.SolicitudServicio], error) {
		items, total, err := s.solicitudRepository.GetAll(ctx, filter)
		return Page[entities.SolicitudServicio]{Items: items, Total: total}, err
	})
}

func (s *SolicitudServicioService) FindByID(ctx context.Context, id uint64) (*entities.SolicitudServicio, error) {
	return memoize(ctx, s.BaseService, fmt.Sprintf("%s:%d", solicitudesServicioCachePrefix, id), func(ctx context.Context) (*entities.SolicitudServicio, error) {
		return s.solicitudRepository.FindByID(ctx, id)
	})
}

func (s *SolicitudServicioService) Create(ctx context.Context, payload dto.CreateSolicitudServicioDTO) (*entities.SolicitudServicio, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.equipoRepository.FindByID(ctx, payload.EquipoID); err != nil {
		return nil, err
	}

	id, err := s.solicitudRepository.Create(ctx, entities.SolicitudServicio{
		EquipoID:      payload.EquipoID,
		SolicitanteID: userID,
		Descripcion:   payload.Descripcion,
		Prioridad:     payload.Prioridad,
		Estado:        constants.EstadoPendiente,
	})
	if err != nil {
		s.logger.Error("Error al crear la solicitud de servicio", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, solicitudesServicioCachePrefix)
	s.publish(ctx, events.New(constants.EventSolicitudActualizada, "solicitud_servicio", id, nil))
	return s.solicitudRepository.FindByID(ctx, id)
}

// Update solo se permite mientras la solicitud está pendiente.
func (s *SolicitudServicioService) Update(ctx context.Context, id uint64, payload dto.UpdateSolicitudServicioDTO) (*entities.SolicitudServicio, error) {
	solicitud, err := s.solicitudRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if solicitud.Estado != constants.EstadoPendiente {
		return nil, apperrors.NewHttpError(http.StatusConflict, "Solo se pueden editar solicitudes pendientes", apperrors.ErrConflict,
			map[string]interface{}{"estado": solicitud.Estado})
	}
	if payload.Descripcion != nil {
		solicitud.Descripcion = *payload.Descripcion
	}
	if payload.Prioridad != nil {
		solicitud.Prioridad = *payload.Prioridad
	}
	if err := s.solicitudRepository.Update(ctx, *solicitud); err != nil {
		return nil, err
	}

	s.invalidate(ctx, solicitudesServicioCachePrefix)
	s.publish(ctx, events.New(constants.EventSolicitudActualizada, "solicitud_servicio", id, nil))
	return solicitud, nil
}

// CambiarEstado aplica la transición; al aprobar crea la orden de servicio en
// la misma transacción.
func (s *SolicitudServicioService) CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*CambioEstadoSolicitud, error) {
	result := &CambioEstadoSolicitud{}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		solicitud, err := s.solicitudRepository.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkTransition(constants.SolicitudServicioWorkflow, solicitud.Estado, payload.Estado); err != nil {
			return err
		}
		if err := s.solicitudRepository.UpdateEstado(ctx, id, payload.Estado); err != nil {
			return err
		}
		solicitud.Estado = payload.Estado
		result.Solicitud = solicitud

		if payload.Estado != constants.EstadoAprobada {
			return nil
		}

		equipo, err := s.equipoRepository.FindByID(ctx, solicitud.EquipoID)
		if err != nil {
			return err
		}
		orden := newOrden(equipo, solicitud.Descripcion, solicitud.Prioridad)
		orden.SolicitudID = null.Uint64From(solicitud.ID)
		ordenID, err := s.ordenRepository.Create(ctx, orden)
		if err != nil {
			return err
		}
		result.Orden, err = s.ordenRepository.FindByID(ctx, ordenID)
		return err
	})
	if err != nil {
		s.logger.Warn("No se pudo cambiar el estado de la solicitud", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, solicitudesServicioCachePrefix)
	ev := events.New(constants.EventSolicitudActualizada, "solicitud_servicio", id, nil)
	ev.Estado = payload.Estado.String()
	s.publish(ctx, ev)

	if result.Orden != nil {
		s.logger.Info("Orden generada desde solicitud", zap.Uint64("solicitudID", id), zap.Uint64("ordenID", result.Orden.ID))
		s.invalidate(ctx, ordenesCachePrefix)
		s.publish(ctx, events.New(constants.EventOrdenCreada, "orden", result.Orden.ID, nil))
	}
	return result, nil
}
