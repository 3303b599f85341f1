package services

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/pkg/constants"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bajaFixture struct {
	svc     *SolicitudBajaService
	bajas   *fakeBajaRepo
	equipos *fakeEquipoRepo
	dir     string
}

func newBajaFixture(t *testing.T) bajaFixture {
	t.Helper()
	base, _, _ := newTestBase(t)
	dir := t.TempDir()
	storage, err := filestorage.NewLocalFileStorage(dir)
	require.NoError(t, err)

	equipos := newFakeEquipoRepo(entities.Equipo{ID: 1, Estado: constants.EquipoOperativo})
	bajas := newFakeBajaRepo()
	svc := NewSolicitudBajaService(base, &fakeTx{}, bajas, equipos, storage)
	return bajaFixture{svc: svc, bajas: bajas, equipos: equipos, dir: dir}
}

func TestSolicitudBajaService_ApprovalDecommissionsEquipo(t *testing.T) {
	f := newBajaFixture(t)
	ctx := asUser(3)

	solicitud, err := f.svc.Create(ctx, dto.CreateSolicitudBajaDTO{EquipoID: 1, Motivo: "Obsolescencia", Justificacion: "Sin repuestos del fabricante"})
	require.NoError(t, err)

	_, err = f.svc.CambiarEstado(ctx, solicitud.ID, dto.CambiarEstadoDTO{Estado: constants.EstadoAprobada})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipoDadoDeBaja, f.equipos.items[1].Estado)

	_, err = f.svc.Create(ctx, dto.CreateSolicitudBajaDTO{EquipoID: 1, Motivo: "x", Justificacion: "y"})
	assert.ErrorIs(t, err, apperrors.ErrConflict, "un equipo dado de baja no admite otra solicitud")
}

func TestSolicitudBajaService_RejectKeepsEquipo(t *testing.T) {
	f := newBajaFixture(t)
	ctx := asUser(3)

	solicitud, err := f.svc.Create(ctx, dto.CreateSolicitudBajaDTO{EquipoID: 1, Motivo: "x", Justificacion: "y"})
	require.NoError(t, err)
	_, err = f.svc.CambiarEstado(ctx, solicitud.ID, dto.CambiarEstadoDTO{Estado: constants.EstadoRechazada})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipoOperativo, f.equipos.items[1].Estado)
}

func TestSolicitudBajaService_Evidencias(t *testing.T) {
	f := newBajaFixture(t)
	ctx := asUser(3)
	solicitud, err := f.svc.Create(ctx, dto.CreateSolicitudBajaDTO{EquipoID: 1, Motivo: "x", Justificacion: "y"})
	require.NoError(t, err)

	evidencia, err := f.svc.AddEvidencia(ctx, solicitud.ID, strings.NewReader("%PDF-1.4"), "informe-tecnico.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(evidencia.URL, filestorage.PublicPrefix+"bajas/"))
	stored := filepath.Join(f.dir, strings.TrimPrefix(evidencia.URL, filestorage.PublicPrefix))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	_, err = f.svc.AddEvidencia(ctx, solicitud.ID, strings.NewReader("MZ"), "virus.exe")
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))

	require.NoError(t, f.svc.DeleteEvidencia(ctx, solicitud.ID, evidencia.ID))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, f.svc.DeleteEvidencia(ctx, solicitud.ID, evidencia.ID), apperrors.ErrNotFound)
}

func TestSolicitudBajaService_EvidenciaFileRemovedWhenInsertFails(t *testing.T) {
	f := newBajaFixture(t)
	ctx := asUser(3)
	solicitud, err := f.svc.Create(ctx, dto.CreateSolicitudBajaDTO{EquipoID: 1, Motivo: "x", Justificacion: "y"})
	require.NoError(t, err)

	f.bajas.failAdd = true
	_, err = f.svc.AddEvidencia(ctx, solicitud.ID, strings.NewReader("img"), "foto.jpg")
	require.Error(t, err)

	var files []string
	_ = filepath.Walk(f.dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	assert.Empty(t, files)
}
