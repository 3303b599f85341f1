package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/internal/events"
	"clinical-service/internal/repositories"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/constants"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/filestorage"
	"clinical-service/pkg/types"
	"clinical-service/pkg/utils"

	"go.uber.org/zap"
)

const solicitudesBajaCachePrefix = "solicitudes-baja"

type SolicitudBajaService struct {
	*BaseService
	txManager        repositories.TxManagerInterface
	bajaRepository   repositories.SolicitudBajaRepositoryInterface
	equipoRepository repositories.EquipoRepositoryInterface
	fileStorage      filestorage.FileStorageInterface
}

func NewSolicitudBajaService(
	base *BaseService,
	txManager repositories.TxManagerInterface,
	bajaRepository repositories.SolicitudBajaRepositoryInterface,
	equipoRepository repositories.EquipoRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
) *SolicitudBajaService {
	return &SolicitudBajaService{
		BaseService:      base,
		txManager:        txManager,
		bajaRepository:   bajaRepository,
		equipoRepository: equipoRepository,
		fileStorage:      fileStorage,
	}
}

func (s *SolicitudBajaService) GetAll(ctx context.Context, filter types.Filter) (Page[entities.SolicitudBaja], error) {
	return memoize(ctx, s.BaseService, cache.Key(solicitudesBajaCachePrefix+":list", filter), func(ctx context.Context) (Page[entities.SolicitudBaja], error) {
		items, total, err := s.bajaRepository.GetAll(ctx, filter)
		return Page[entities.SolicitudBaja]{Items: items, Total: total}, err
	})
}

func (s *SolicitudBajaService) FindByID(ctx context.Context, id uint64) (*entities.SolicitudBaja, error) {
	return memoize(ctx, s.BaseService, fmt.Sprintf("%s:%d", solicitudesBajaCachePrefix, id), func(ctx context.Context) (*entities.SolicitudBaja, error) {
		return s.bajaRepository.FindByID(ctx, id)
	})
}

func (s *SolicitudBajaService) Create(ctx context.Context, payload dto.CreateSolicitudBajaDTO) (*entities.SolicitudBaja, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	equipo, err := s.equipoRepository.FindByID(ctx, payload.EquipoID)
	if err != nil {
		return nil, err
	}
	if equipo.Estado == constants.EquipoDadoDeBaja {
		return nil, apperrors.NewHttpError(http.StatusConflict, "El equipo ya está dado de baja", apperrors.ErrConflict, nil)
	}

	id, err := s.bajaRepository.Create(ctx, entities.SolicitudBaja{
		EquipoID:      payload.EquipoID,
		SolicitanteID: userID,
		Motivo:        payload.Motivo,
		Justificacion: payload.Justificacion,
		Estado:        constants.EstadoPendiente,
	})
	if err != nil {
		s.logger.Error("Error al crear la solicitud de baja", zap.Uint64("equipoID", payload.EquipoID), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, solicitudesBajaCachePrefix)
	s.publish(ctx, events.New(constants.EventBajaActualizada, "solicitud_baja", id, nil))
	return s.bajaRepository.FindByID(ctx, id)
}

// CambiarEstado marca el equipo como dado de baja cuando la solicitud se aprueba.
func (s *SolicitudBajaService) CambiarEstado(ctx context.Context, id uint64, payload dto.CambiarEstadoDTO) (*entities.SolicitudBaja, error) {
	var solicitud *entities.SolicitudBaja
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		solicitud, err = s.bajaRepository.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkTransition(constants.SolicitudBajaWorkflow, solicitud.Estado, payload.Estado); err != nil {
			return err
		}
		if err := s.bajaRepository.UpdateEstado(ctx, id, payload.Estado); err != nil {
			return err
		}
		if payload.Estado == constants.EstadoAprobada {
			return s.equipoRepository.UpdateEstado(ctx, solicitud.EquipoID, constants.EquipoDadoDeBaja)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	solicitud.Estado = payload.Estado

	s.invalidate(ctx, solicitudesBajaCachePrefix)
	ev := events.New(constants.EventBajaActualizada, "solicitud_baja", id, nil)
	ev.Estado = payload.Estado.String()
	s.publish(ctx, ev)

	if payload.Estado == constants.EstadoAprobada {
		s.logger.Info("Equipo dado de baja", zap.Uint64("equipoID", solicitud.EquipoID), zap.Uint64("solicitudID", id))
		s.invalidate(ctx, equiposCachePrefix)
		ev := events.New(constants.EventEquipoActualizado, "equipo", solicitud.EquipoID, nil)
		ev.Estado = constants.EquipoDadoDeBaja
		s.publish(ctx, ev)
	}
	return solicitud, nil
}

// AddEvidencia guarda el archivo y lo asocia a la solicitud. Si el registro
// falla, el archivo se borra.
func (s *SolicitudBajaService) AddEvidencia(ctx context.Context, id uint64, file io.Reader, fileName string) (*entities.Evidencia, error) {
	solicitud, err := s.bajaRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if solicitud.Estado != constants.EstadoPendiente {
		return nil, apperrors.NewHttpError(http.StatusConflict, "La solicitud ya fue resuelta", apperrors.ErrConflict,
			map[string]interface{}{"estado": solicitud.Estado})
	}

	url, err := s.fileStorage.Save(file, fileName, constants.UploadContextBaja.String())
	if err != nil {
		if errors.Is(err, filestorage.ErrUnsupportedType) {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Tipo de archivo no permitido", apperrors.ErrBadRequest,
				map[string]interface{}{"archivo": fileName})
		}
		s.logger.Error("Error al guardar la evidencia", zap.Uint64("solicitudID", id), zap.Error(err))
		return nil, err
	}

	evidencia := entities.Evidencia{SolicitudID: id, URL: url, Nombre: fileName}
	evidencia.ID, err = s.bajaRepository.AddEvidencia(ctx, evidencia)
	if err != nil {
		if delErr := s.fileStorage.Delete(url); delErr != nil {
			s.logger.Warn("No se pudo borrar el archivo huérfano", zap.String("url", url), zap.Error(delErr))
		}
		return nil, err
	}

	s.invalidate(ctx, solicitudesBajaCachePrefix)
	return &evidencia, nil
}

func (s *SolicitudBajaService) DeleteEvidencia(ctx context.Context, solicitudID, evidenciaID uint64) error {
	evidencia, err := s.bajaRepository.FindEvidencia(ctx, solicitudID, evidenciaID)
	if err != nil {
		return err
	}
	if err := s.bajaRepository.DeleteEvidencia(ctx, evidenciaID); err != nil {
		return err
	}
	if err := s.fileStorage.Delete(evidencia.URL); err != nil {
		s.logger.Warn("No se pudo borrar el archivo de la evidencia", zap.String("url", evidencia.URL), zap.Error(err))
	}
	s.invalidate(ctx, solicitudesBajaCachePrefix)
	return nil
}
