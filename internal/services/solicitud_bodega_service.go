package services

import (
	"context"
	"fmt"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/internal/events"
	"clinical-service/internal/repositories"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"
	"clinical-service/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const solicitudesBodegaCachePrefix = "solicitudes-bodega"

type SolicitudBodegaService struct {
	*BaseService
	txManager        repositories.TxManagerInterface
	bodegaRepository repositories.SolicitudBodegaRepositoryInterface
	ordenRepository  repositories.OrdenServicioRepositoryInterface
}

func NewSolicitudBodegaService(
	base *BaseService,
	txManager repositories.TxManagerInterface,
	bodegaRepository repositories.SolicitudBodegaRepositoryInterface,
	ordenRepository repositories.OrdenServicioRepositoryInterface,
) *SolicitudBodegaService {
	return &SolicitudBodegaService{
		BaseService:      base,
		txManager:        txManager,
		bodegaRepository: bodegaRepository,
		ordenRepository:  ordenRepository,
	}
}

func (s *SolicitudBodegaService) GetAll(ctx context.Context, filter types.Filter) (Page[entities.SolicitudBodega], error) {
	return memoize(ctx, s.BaseService, cache.Key(solicitudesBodegaCachePrefix+":list", filter), func(ctx context.Context) (Page[entities.SolicitudBodega], error) {
		items, total, err := s.bodegaRepository.GetAll(ctx, filter)
		return Page[entities.SolicitudBodega]{Items: items, Total: total}, err
	})
}

func (s *SolicitudBodegaService) FindByID(ctx context.Context, id uint64) (*entities.SolicitudBodega, error) {
	return memoize(ctx, s.BaseService, fmt.Sprintf("%s:%d", solicitudesBodegaCachePrefix, id), func(ctx context.Context) (*entities.SolicitudBodega, error) {
		return s.bodegaRepository.FindByID(ctx, id)
	})
}

// Create guarda la cabecera y los ítems en una sola transacción.
func (s *SolicitudBodegaService) Create(ctx context.Context, payload dto.CreateSolicitudBodegaDTO) (*entities.SolicitudBodega, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	solicitud := entities.SolicitudBodega{
		SolicitanteID: userID,
		Motivo:        payload.Motivo,
		Estado:        constants.EstadoPendiente,
	}
	if payload.OrdenID != nil {
		if _, err := s.ordenRepository.FindByID(ctx, *payload.OrdenID); err != nil {
			return nil, err
		}
		solicitud.OrdenID = null.Uint64From(*payload.OrdenID)
	}

	items := make([]entities.SolicitudBodegaItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, entities.SolicitudBodegaItem{
			Codigo:      it.Codigo,
			Descripcion: it.Descripcion,
			Cantidad:    it.Cantidad,
		})
	}

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.bodegaRepository.Create(ctx, solicitud)
		if err != nil {
			return err
		}
		return s.bodegaRepository.AddItems(ctx, id, items)
	})
	if err != nil {
		s.logger.Error("Error al crear la solicitud de bodega", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Solicitud de bodega creada", zap.Uint64("id", id), zap.Int("items", len(items)))

	s.invalidate(ctx, solicitudesBodegaCachePrefix)
	s.publish(ctx, events.New(constants.EventBodegaActualizada, "solicitud_bodega", id, nil))
	return s.bodegaRepository.FindByID(ctx, id)
}

func (s *SolicitudBodegaService) CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*entities.SolicitudBodega, error) {
	solicitud, err := s.bodegaRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(constants.SolicitudBodegaWorkflow, solicitud.Estado, payload.Estado); err != nil {
		return nil, err
	}
	if err := s.bodegaRepository.UpdateEstado(ctx, id, payload.Estado); err != nil {
		return nil, err
	}
	solicitud.Estado = payload.Estado

	s.invalidate(ctx, solicitudesBodegaCachePrefix)
	ev := events.New(constants.EventBodegaActualizada, "solicitud_bodega", id, nil)
	ev.Estado = payload.Estado.String()
	s.publish(ctx, ev)
	return solicitud, nil
}
