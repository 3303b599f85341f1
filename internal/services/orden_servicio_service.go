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

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ordenesCachePrefix = "ordenes"

type OrdenServicioService struct {
	*BaseService
	ordenRepository  repositories.OrdenServicioRepositoryInterface
	equipoRepository repositories.EquipoRepositoryInterface
}

func NewOrdenServicioService(
	base *BaseService,
	ordenRepository repositories.OrdenServicioRepositoryInterface,
	equipoRepository repositories.EquipoRepositoryInterface,
) *OrdenServicioService {
	return &OrdenServicioService{
		BaseService:      base,
		ordenRepository:  ordenRepository,
		equipoRepository: equipoRepository,
	}
}

func (s *OrdenServicioService) GetAll(ctx context.Context, filter types.Filter) (Page[entities.OrdenServicio], error) {
	return memoize(ctx, s.BaseService, cache.Key(ordenesCachePrefix+":list", filter), func(ctx context.Context) (Page[entities.OrdenServicio], error) {
		items, total, err := s.ordenRepository.GetAll(ctx, filter)
		return Page[entities.OrdenServicio]{Items: items, Total: total}, err
	})
}

func (s *OrdenServicioService) FindByID(ctx context.Context, id uint64) (*entities.OrdenServicio, error) {
	return memoize(ctx, s.BaseService, fmt.Sprintf("%s:%d", ordenesCachePrefix, id), func(ctx context.Context) (*entities.OrdenServicio, error) {
		return s.ordenRepository.FindByID(ctx, id)
	})
}

func (s *OrdenServicioService) FindByQRToken(ctx context.Context, token string) (*entities.OrdenServicio, error) {
	return s.ordenRepository.FindByQRToken(ctx, token)
}

// Create toma la ubicación del equipo cuando la orden no trae coordenadas.
func (s *OrdenServicioService) Create(ctx context.Context, payload dto.CreateOrdenServicioDTO) (*entities.OrdenServicio, error) {
	equipo, err := s.equipoRepository.FindByID(ctx, payload.EquipoID)
	if err != nil {
		return nil, err
	}
	if equipo.Estado == constants.EquipoDadoDeBaja {
		return nil, apperrors.NewHttpError(http.StatusConflict, "El equipo está dado de baja", apperrors.ErrConflict, nil)
	}

	orden := newOrden(equipo, payload.Descripcion, payload.Prioridad)
	if payload.TecnicoID != nil {
		orden.TecnicoID = null.Uint64From(*payload.TecnicoID)
	}
	if payload.Latitud != nil && payload.Longitud != nil {
		orden.Latitud, orden.Longitud = *payload.Latitud, *payload.Longitud
	}
	if payload.FechaProgramada != nil {
		orden.FechaProgramada = null.TimeFrom(*payload.FechaProgramada)
	}

	id, err := s.ordenRepository.Create(ctx, orden)
	if err != nil {
		s.logger.Error("Error al crear la orden de servicio", zap.Uint64("equipoID", payload.EquipoID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Orden de servicio creada", zap.Uint64("id", id))

	s.invalidate(ctx, ordenesCachePrefix)
	s.publish(ctx, events.New(constants.EventOrdenCreada, "orden", id, nil))
	return s.ordenRepository.FindByID(ctx, id)
}

func (s *OrdenServicioService) Update(ctx context.Context, id uint64, payload dto.UpdateOrdenServicioDTO) (*entities.OrdenServicio, error) {
	orden, err := s.ordenRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.Estado == constants.EstadoCompletada || orden.Estado == constants.EstadoCancelada {
		return nil, apperrors.NewHttpError(http.StatusConflict, "La orden ya está cerrada", apperrors.ErrConflict, map[string]interface{}{"estado": orden.Estado})
	}

	if payload.TecnicoID != nil {
		orden.TecnicoID = null.Uint64From(*payload.TecnicoID)
	}
	if payload.Descripcion != nil {
		orden.Descripcion = *payload.Descripcion
	}
	if payload.Prioridad != nil {
		orden.Prioridad = *payload.Prioridad
	}
	if payload.Latitud != nil {
		orden.Latitud = *payload.Latitud
	}
	if payload.Longitud != nil {
		orden.Longitud = *payload.Longitud
	}
	if payload.FechaProgramada != nil {
		orden.FechaProgramada = null.TimeFrom(*payload.FechaProgramada)
	}

	if err := s.ordenRepository.Update(ctx, *orden); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ordenesCachePrefix)
	s.publish(ctx, events.New(constants.EventOrdenActualizada, "orden", id, nil))
	return s.ordenRepository.FindByID(ctx, id)
}

func (s *OrdenServicioService) CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*entities.OrdenServicio, error) {
	orden, err := s.ordenRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(constants.OrdenServicioWorkflow, orden.Estado, payload.Estado); err != nil {
		return nil, err
	}
	if err := s.ordenRepository.UpdateEstado(ctx, id, payload.Estado); err != nil {
		return nil, err
	}
	s.logger.Info("Estado de la orden actualizado",
		zap.Uint64("id", id),
		zap.String("de", orden.Estado.String()),
		zap.String("a", payload.Estado.String()),
	)

	s.invalidate(ctx, ordenesCachePrefix)
	ev := events.New(constants.EventOrdenActualizada, "orden", id, nil)
	ev.Estado = payload.Estado.String()
	s.publish(ctx, ev)

	orden.Estado = payload.Estado
	return orden, nil
}

func (s *OrdenServicioService) Delete(ctx context.Context, id uint64) error {
	if err := s.ordenRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, ordenesCachePrefix, visitasCachePrefix)
	s.publish(ctx, events.New(constants.EventOrdenActualizada, "orden", id, nil))
	return nil
}

// newOrden arma una orden pendiente en la ubicación del equipo con un token QR nuevo.
func newOrden(equipo *entities.Equipo, descripcion, prioridad string) entities.OrdenServicio {
	return entities.OrdenServicio{
		EquipoID:    equipo.ID,
		Descripcion: descripcion,
		Prioridad:   prioridad,
		Estado:      constants.EstadoPendiente,
		Latitud:     equipo.Latitud,
		Longitud:    equipo.Longitud,
		QRToken:     uuid.NewString(),
	}
}

func checkTransition(w constants.Workflow, from, to constants.Estado) error {
	if w.CanTransition(from, to) {
		return nil
	}
	return apperrors.NewHttpError(http.StatusConflict, "Transición de estado no permitida", apperrors.ErrInvalidTransition,
		map[string]interface{}{"desde": from, "hacia": to})
}
