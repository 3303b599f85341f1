package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/internal/events"
	"clinical-service/internal/repositories"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/constants"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/geo"
	"clinical-service/pkg/types"
	"clinical-service/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const visitasCachePrefix = "visitas"

type VisitaService struct {
	*BaseService
	txManager        repositories.TxManagerInterface
	visitaRepository repositories.VisitaRepositoryInterface
	ordenRepository  repositories.OrdenServicioRepositoryInterface
	radius           float64
	now              func() time.Time
}

func NewVisitaService(
	base *BaseService,
	txManager repositories.TxManagerInterface,
	visitaRepository repositories.VisitaRepositoryInterface,
	ordenRepository repositories.OrdenServicioRepositoryInterface,
	radius float64,
) *VisitaService {
	return &VisitaService{
		BaseService:      base,
		txManager:        txManager,
		visitaRepository: visitaRepository,
		ordenRepository:  ordenRepository,
		radius:           radius,
		now:              time.Now,
	}
}

func (s *VisitaService) GetAll(ctx context.Context, filter types.Filter) (Page[entities.Visita], error) {
	return memoize(ctx, s.BaseService, cache.Key(visitasCachePrefix+":list", filter), func(ctx context.Context) (Page[entities.Visita], error) {
		items, total, err := s.visitaRepository.GetAll(ctx, filter)
		return Page[entities.Visita]{Items: items, Total: total}, err
	})
}

func (s *VisitaService) FindByID(ctx context.Context, id uint64) (*entities.Visita, error) {
	return memoize(ctx, s.BaseService, fmt.Sprintf("%s:%d", visitasCachePrefix, id), func(ctx context.Context) (*entities.Visita, error) {
		return s.visitaRepository.FindByID(ctx, id)
	})
}

func (s *VisitaService) Programar(ctx context.Context, payload dto.CreateVisitaDTO) (*entities.Visita, error) {
	orden, err := s.ordenRepository.FindByID(ctx, payload.OrdenID)
	if err != nil {
		return nil, err
	}
	if orden.Estado == constants.EstadoCompletada || orden.Estado == constants.EstadoCancelada {
		return nil, apperrors.NewHttpError(http.StatusConflict, "La orden ya está cerrada", apperrors.ErrConflict,
			map[string]interface{}{"estado": orden.Estado})
	}

	id, err := s.visitaRepository.Create(ctx, entities.Visita{
		OrdenID:         orden.ID,
		TecnicoID:       payload.TecnicoID,
		Estado:          constants.EstadoProgramada,
		FechaProgramada: payload.FechaProgramada,
	})
	if err != nil {
		s.logger.Error("Error al programar la visita", zap.Uint64("ordenID", orden.ID), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, visitasCachePrefix)
	s.publish(ctx, events.New(constants.EventVisitaProgramada, "visita", id, nil))
	return s.visitaRepository.FindByID(ctx, id)
}

func (s *VisitaService) Cancelar(ctx context.Context, id uint64) (*entities.Visita, error) {
	visita, err := s.visitaRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(constants.VisitaWorkflow, visita.Estado, constants.EstadoCancelada); err != nil {
		return nil, err
	}
	if err := s.visitaRepository.UpdateEstado(ctx, id, visita.Estado, constants.EstadoCancelada); err != nil {
		return nil, concurrentMarca(err)
	}
	visita.Estado = constants.EstadoCancelada

	s.invalidate(ctx, visitasCachePrefix)
	s.publish(ctx, events.New(constants.EventVisitaCancelada, "visita", id, nil))
	return visita, nil
}

// CheckIn registra la llegada del técnico. El token del QR identifica la orden
// y la posición debe caer dentro del radio configurado alrededor de ella.
func (s *VisitaService) CheckIn(ctx context.Context, id uint64, payload dto.CheckInDTO) (*entities.Visita, error) {
	visita, orden, result, err := s.verificar(ctx, id, payload.MarcaDTO, constants.EstadoEnCurso)
	if err != nil {
		return nil, err
	}

	marca := s.marca(payload.Point(), result)
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.visitaRepository.RegistrarCheckIn(ctx, visita.ID, marca); err != nil {
			return concurrentMarca(err)
		}
		if orden.Estado == constants.EstadoPendiente {
			return s.ordenRepository.UpdateEstado(ctx, orden.ID, constants.EstadoEnProceso)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Check-in registrado",
		zap.Uint64("visitaID", visita.ID),
		zap.Uint64("ordenID", orden.ID),
		zap.Float64("distancia", result.Distance),
	)

	visita.Estado = constants.EstadoEnCurso
	visita.CheckInAt = null.TimeFrom(marca.At)
	visita.CheckInLatitud = null.Float64From(marca.Latitud)
	visita.CheckInLongitud = null.Float64From(marca.Longitud)
	visita.CheckInDistancia = null.Float64From(marca.Distancia)

	s.invalidate(ctx, visitasCachePrefix, ordenesCachePrefix)
	ev := events.New(constants.EventVisitaCheckIn, "visita", visita.ID, result)
	ev.Estado = visita.Estado.String()
	s.publish(ctx, ev)
	return visita, nil
}

func (s *VisitaService) CheckOut(ctx context.Context, id uint64, payload dto.CheckOutDTO) (*entities.Visita, error) {
	visita, _, result, err := s.verificar(ctx, id, payload.MarcaDTO, constants.EstadoCompletada)
	if err != nil {
		return nil, err
	}

	observaciones := null.StringFromPtr(payload.Observaciones)
	marca := s.marca(payload.Point(), result)
	if err := s.visitaRepository.RegistrarCheckOut(ctx, visita.ID, marca, observaciones); err != nil {
		return nil, concurrentMarca(err)
	}
	s.logger.Info("Check-out registrado",
		zap.Uint64("visitaID", visita.ID),
		zap.Float64("distancia", result.Distance),
	)

	visita.Estado = constants.EstadoCompletada
	visita.CheckOutAt = null.TimeFrom(marca.At)
	visita.CheckOutLatitud = null.Float64From(marca.Latitud)
	visita.CheckOutLongitud = null.Float64From(marca.Longitud)
	visita.CheckOutDistancia = null.Float64From(marca.Distancia)
	visita.Observaciones = observaciones

	s.invalidate(ctx, visitasCachePrefix)
	ev := events.New(constants.EventVisitaCheckOut, "visita", visita.ID, result)
	ev.Estado = visita.Estado.String()
	s.publish(ctx, ev)
	return visita, nil
}

// verificar aplica, en orden: token QR, pertenencia de la visita a la orden,
// técnico asignado, transición de estado y geocerca.
func (s *VisitaService) verificar(ctx context.Context, id uint64, payload dto.MarcaDTO, destino constants.Estado) (*entities.Visita, *entities.OrdenServicio, geo.Result, error) {
	var result geo.Result

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, nil, result, err
	}
	if payload.Latitud == nil || payload.Longitud == nil {
		return nil, nil, result, apperrors.NewInvalidInputError("faltan las coordenadas GPS del dispositivo")
	}
	point := payload.Point()
	if err := point.Validate(); err != nil {
		return nil, nil, result, apperrors.NewInvalidInputError("coordenadas inválidas: %v", err)
	}

	orden, err := s.ordenRepository.FindByQRToken(ctx, payload.QRToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, result, apperrors.NewHttpError(http.StatusNotFound, "Código QR no reconocido", err, nil)
		}
		return nil, nil, result, err
	}
	visita, err := s.visitaRepository.FindByID(ctx, id)
	if err != nil {
		return nil, nil, result, err
	}
	if visita.OrdenID != orden.ID {
		return nil, nil, result, apperrors.NewHttpError(http.StatusBadRequest, "La visita no pertenece a la orden escaneada", apperrors.ErrVisitMismatch,
			map[string]interface{}{"visita_orden_id": visita.OrdenID, "orden_id": orden.ID})
	}
	if visita.TecnicoID != userID {
		s.logger.Warn("Marca de un técnico no asignado", zap.Uint64("visitaID", id), zap.Uint64("userID", userID))
		return nil, nil, result, apperrors.ErrForbidden
	}
	if err := checkTransition(constants.VisitaWorkflow, visita.Estado, destino); err != nil {
		return nil, nil, result, err
	}

	result = geo.NewFence(orden.Point(), s.radius).Check(point)
	if !result.Allowed {
		s.logger.Warn("Marca fuera de la geocerca",
			zap.Uint64("visitaID", id),
			zap.Float64("distancia", result.Distance),
			zap.Float64("radio", result.Radius),
		)
		return nil, nil, result, apperrors.NewHttpError(http.StatusUnprocessableEntity,
			fmt.Sprintf("Está a %.0f m de la orden; el máximo permitido es %.0f m", result.Distance, result.Radius),
			apperrors.ErrOutsideGeofence,
			map[string]interface{}{"distancia": result.Distance, "radio": result.Radius},
		)
	}
	return visita, orden, result, nil
}

func (s *VisitaService) marca(p geo.Point, r geo.Result) entities.Marca {
	return entities.Marca{At: s.now().UTC(), Latitud: p.Lat, Longitud: p.Lng, Distancia: r.Distance}
}

// concurrentMarca traduce el "sin filas" de una marca que perdió la carrera
// contra otra petición sobre la misma visita.
func concurrentMarca(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewHttpError(http.StatusConflict, "La visita cambió de estado", apperrors.ErrInvalidTransition, nil)
	}
	return err
}
