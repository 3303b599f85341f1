package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix es la ruta bajo la que el servidor expone los archivos.
const PublicPrefix = "/uploads/"

var ErrUnsupportedType = errors.New("tipo de archivo no permitido")

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

type FileStorageInterface interface {
	// Save devuelve la URL pública del archivo guardado.
	Save(file io.Reader, originalFileName string, prefix string) (string, error)
	Delete(fileURL string) error
}

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de archivos: %w", err)
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	now := s.now()
	datePath := now.Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(fullDirPath, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return PublicPrefix + filepath.ToSlash(filepath.Join(prefix, datePath, name)), nil
}

// Delete acepta la URL pública; un archivo inexistente no es error.
func (s *LocalFileStorage) Delete(fileURL string) error {
	rel := filepath.Clean(strings.TrimPrefix(fileURL, PublicPrefix))
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("ruta fuera del directorio de archivos: %s", fileURL)
	}
	err := os.Remove(filepath.Join(s.basePath, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
