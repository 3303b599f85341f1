package services

import (
	"testing"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/pkg/constants"
	apperrors "clinical-service/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolicitudServicioService_ApproveCreatesOrden(t *testing.T) {
	base, _, pub := newTestBase(t)
	equipos := newFakeEquipoRepo(entities.Equipo{ID: 1, Latitud: ordenLat, Longitud: ordenLng, Estado: constants.EquipoOperativo})
	ordenes := newFakeOrdenRepo()
	solicitudes := &fakeSolicitudServicioRepo{}
	tx := &fakeTx{}
	svc := NewSolicitudServicioService(base, tx, solicitudes, ordenes, equipos)
	ctx := asUser(5)

	solicitud, err := svc.Create(ctx, dto.CreateSolicitudServicioDTO{EquipoID: 1, Descripcion: "No enciende", Prioridad: constants.PrioridadCritica})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), solicitud.SolicitanteID)
	assert.Equal(t, constants.EstadoPendiente, solicitud.Estado)

	result, err := svc.CambiarEstado(ctx, solicitud.ID, dto.CambiarEstadoDTO{Estado: constants.EstadoAprobada})
	require.NoError(t, err)
	require.NotNil(t, result.Orden)
	assert.Equal(t, constants.EstadoAprobada, result.Solicitud.Estado)
	assert.Equal(t, solicitud.ID, result.Orden.SolicitudID.Uint64)
	assert.Equal(t, "No enciende", result.Orden.Descripcion)
	assert.Equal(t, constants.PrioridadCritica, result.Orden.Prioridad)
	assert.Equal(t, 1, tx.calls)
	assert.Contains(t, pub.names(), constants.EventOrdenCreada)

	_, err = svc.CambiarEstado(ctx, solicitud.ID, dto.CambiarEstadoDTO{Estado: constants.EstadoRechazada})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	desc := "tarde"
	_, err = svc.Update(ctx, solicitud.ID, dto.UpdateSolicitudServicioDTO{Descripcion: &desc})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSolicitudServicioService_RejectDoesNotCreateOrden(t *testing.T) {
	base, _, _ := newTestBase(t)
	equipos := newFakeEquipoRepo(entities.Equipo{ID: 1, Estado: constants.EquipoOperativo})
	ordenes := newFakeOrdenRepo()
	svc := NewSolicitudServicioService(base, &fakeTx{}, &fakeSolicitudServicioRepo{}, ordenes, equipos)
	ctx := asUser(5)

	solicitud, err := svc.Create(ctx, dto.CreateSolicitudServicioDTO{EquipoID: 1, Descripcion: "x", Prioridad: constants.PrioridadBaja})
	require.NoError(t, err)

	result, err := svc.CambiarEstado(ctx, solicitud.ID, dto.CambiarEstadoDTO{Estado: constants.EstadoRechazada})
	require.NoError(t, err)
	assert.Nil(t, result.Orden)
	assert.Empty(t, ordenes.items)
}

func TestSolicitudServicioService_CreateNeedsUser(t *testing.T) {
	base, _, _ := newTestBase(t)
	svc := NewSolicitudServicioService(base, &fakeTx{}, &fakeSolicitudServicioRepo{}, newFakeOrdenRepo(), newFakeEquipoRepo())

	_, err := svc.Create(asUser(0), dto.CreateSolicitudServicioDTO{EquipoID: 1, Descripcion: "x", Prioridad: constants.PrioridadBaja})
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}

func TestSolicitudBodegaService_CreateAndWorkflow(t *testing.T) {
	base, _, _ := newTestBase(t)
	repo := &fakeBodegaRepo{}
	tx := &fakeTx{}
	ordenID := uint64(1)
	svc := NewSolicitudBodegaService(base, tx, repo, newFakeOrdenRepo(entities.OrdenServicio{ID: 1}))
	ctx := asUser(7)

	solicitud, err := svc.Create(ctx, dto.CreateSolicitudBodegaDTO{
		OrdenID: &ordenID,
		Motivo:  "Repuestos para mantención",
		Items: []dto.SolicitudBodegaItemDTO{
			{Codigo: "FIL-01", Descripcion: "Filtro HEPA", Cantidad: 2},
			{Codigo: "BAT-12", Descripcion: "Batería 12V", Cantidad: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Len(t, solicitud.Items, 2)
	assert.Equal(t, uint64(1), solicitud.OrdenID.Uint64)

	_, err = svc.CambiarEstado(ctx, solicitud.ID, dto.CambiarEstadoDTO{Estado: constants.EstadoEntregada})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	for _, next := range []constants.Estado{constants.EstadoAprobada, constants.EstadoEntregada} {
		s, err := svc.CambiarEstado(ctx, solicitud.ID, dto.CambiarEstadoDTO{Estado: next})
		require.NoError(t, err)
		assert.Equal(t, next, s.Estado)
	}

	bad := uint64(9)
	_, err = svc.Create(ctx, dto.CreateSolicitudBodegaDTO{OrdenID: &bad, Motivo: "x", Items: []dto.SolicitudBodegaItemDTO{{Codigo: "a", Descripcion: "b", Cantidad: 1}}})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
