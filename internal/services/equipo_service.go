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

	"go.uber.org/zap"
)

const equiposCachePrefix = "equipos"

type EquipoService struct {
	*BaseService
	equipoRepository repositories.EquipoRepositoryInterface
}

func NewEquipoService(base *BaseService, equipoRepository repositories.EquipoRepositoryInterface) *EquipoService {
	return &EquipoService{BaseService: base, equipoRepository: equipoRepository}
}

func (s *EquipoService) GetAll(ctx context.Context, filter types.Filter) (Page[entities.Equipo], error) {
	return memoize(ctx, s.BaseService, cache.Key(equiposCachePrefix+":list", filter), func(ctx context.Context) (Page[entities.Equipo], error) {
		items, total, err := s.equipoRepository.GetAll(ctx, filter)
		return Page[entities.Equipo]{Items: items, Total: total}, err
	})
}

func (s *EquipoService) FindByID(ctx context.Context, id uint64) (*entities.Equipo, error) {
	return memoize(ctx, s.BaseService, fmt.Sprintf("%s:%d", equiposCachePrefix, id), func(ctx context.Context) (*entities.Equipo, error) {
		return s.equipoRepository.FindByID(ctx, id)
	})
}

func (s *EquipoService) Create(ctx context.Context, payload dto.CreateEquipoDTO) (*entities.Equipo, error) {
	equipo := entities.Equipo{
		Nombre:    payload.Nombre,
		Serie:     payload.Serie,
		Marca:     payload.Marca,
		Modelo:    payload.Modelo,
		Ubicacion: payload.Ubicacion,
		Latitud:   *payload.Latitud,
		Longitud:  *payload.Longitud,
		Estado:    constants.EquipoOperativo,
	}
	id, err := s.equipoRepository.Create(ctx, equipo)
	if err != nil {
		s.logger.Error("Error al crear el equipo", zap.String("serie", payload.Serie), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Equipo creado", zap.Uint64("id", id), zap.String("serie", payload.Serie))
	s.afterWrite(ctx, id, constants.EquipoOperativo)
	return s.equipoRepository.FindByID(ctx, id)
}

func (s *EquipoService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipoDTO) (*entities.Equipo, error) {
	equipo, err := s.equipoRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Nombre != nil {
		equipo.Nombre = *payload.Nombre
	}
	if payload.Serie != nil {
		equipo.Serie = *payload.Serie
	}
	if payload.Marca != nil {
		equipo.Marca = *payload.Marca
	}
	if payload.Modelo != nil {
		equipo.Modelo = *payload.Modelo
	}
	if payload.Ubicacion != nil {
		equipo.Ubicacion = *payload.Ubicacion
	}
	if payload.Latitud != nil {
		equipo.Latitud = *payload.Latitud
	}
	if payload.Longitud != nil {
		equipo.Longitud = *payload.Longitud
	}
	if payload.Estado != nil {
		equipo.Estado = *payload.Estado
	}

	if err := s.equipoRepository.Update(ctx, *equipo); err != nil {
		s.logger.Error("Error al actualizar el equipo", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.afterWrite(ctx, id, equipo.Estado)
	return s.equipoRepository.FindByID(ctx, id)
}

func (s *EquipoService) Delete(ctx context.Context, id uint64) error {
	if err := s.equipoRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, id, "")
	return nil
}

func (s *EquipoService) afterWrite(ctx context.Context, id uint64, estado string) {
	s.invalidate(ctx, equiposCachePrefix)
	ev := events.New(constants.EventEquipoActualizado, "equipo", id, nil)
	ev.Estado = estado
	s.publish(ctx, ev)
}
