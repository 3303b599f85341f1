package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/internal/repositories"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/service"
	"clinical-service/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxLoginAttempts = 5
	lockoutWindow    = 15 * time.Minute
)

type AuthService struct {
	usuarioRepository repositories.UsuarioRepositoryInterface
	attemptRepository repositories.LoginAttemptRepositoryInterface
	jwtService        service.JWTService
	logger            *zap.Logger
}

func NewAuthService(
	usuarioRepository repositories.UsuarioRepositoryInterface,
	attemptRepository repositories.LoginAttemptRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		usuarioRepository: usuarioRepository,
		attemptRepository: attemptRepository,
		jwtService:        jwtService,
		logger:            logger,
	}
}

// Login no distingue entre usuario inexistente y contraseña incorrecta.
// Tras maxLoginAttempts fallos el correo queda bloqueado durante lockoutWindow.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error) {
	key := strings.ToLower(payload.Email)
	if n, err := s.attemptRepository.Count(ctx, key); err == nil && n >= maxLoginAttempts {
		s.logger.Warn("Login rechazado: cuenta bloqueada", zap.String("email", key))
		return nil, apperrors.ErrTooManyAttempts
	}

	usuario, err := s.usuarioRepository.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.failedAttempt(ctx, key)
		}
		return nil, err
	}
	if !usuario.Activo {
		s.logger.Warn("Login de un usuario inactivo", zap.Uint64("userID", usuario.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(usuario.PasswordHash, payload.Password); err != nil {
		return nil, s.failedAttempt(ctx, key)
	}
	if err := s.attemptRepository.Reset(ctx, key); err != nil {
		s.logger.Warn("No se pudo reiniciar el contador de intentos", zap.Error(err))
	}

	s.logger.Info("Login correcto", zap.Uint64("userID", usuario.ID), zap.String("rol", usuario.Rol))
	return s.issue(usuario)
}

func (s *AuthService) failedAttempt(ctx context.Context, key string) error {
	n, err := s.attemptRepository.Incr(ctx, key, lockoutWindow)
	if err != nil {
		s.logger.Warn("No se pudo registrar el intento fallido", zap.Error(err))
		return apperrors.ErrInvalidCredentials
	}
	if n >= maxLoginAttempts {
		s.logger.Warn("Login bloqueado por intentos fallidos", zap.String("email", key), zap.Int64("intentos", n))
		return apperrors.ErrTooManyAttempts
	}
	return apperrors.ErrInvalidCredentials
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	usuario, err := s.usuarioRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !usuario.Activo {
		return nil, apperrors.ErrUnauthorized
	}
	return s.issue(usuario)
}

func (s *AuthService) Me(ctx context.Context) (*entities.Usuario, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.usuarioRepository.FindByID(ctx, userID)
}

func (s *AuthService) issue(usuario *entities.Usuario) (*dto.TokenResponseDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(usuario.ID, usuario.Rol)
	if err != nil {
		s.logger.Error("Error al firmar los tokens", zap.Uint64("userID", usuario.ID), zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		Usuario:      usuario,
	}, nil
}
