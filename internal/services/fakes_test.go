package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinical-service/internal/entities"
	"clinical-service/internal/events"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/constants"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/eventbus"
	"clinical-service/pkg/types"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type fakeTx struct{ calls int }

func (f *fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *fakePublisher) Publish(_ context.Context, e eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e.(events.DomainEvent))
}

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name())
	}
	return out
}

func newTestBase(t *testing.T) (*BaseService, *cache.MemoryStore, *fakePublisher) {
	t.Helper()
	store := cache.NewMemoryStore()
	pub := &fakePublisher{}
	return NewBaseService(store, time.Minute, pub, zap.NewNop()), store, pub
}

// --- equipos

type fakeEquipoRepo struct {
	items map[uint64]entities.Equipo
	next  uint64
	reads int
}

func newFakeEquipoRepo(items ...entities.Equipo) *fakeEquipoRepo {
	r := &fakeEquipoRepo{items: map[uint64]entities.Equipo{}}
	for _, e := range items {
		r.items[e.ID] = e
		if e.ID > r.next {
			r.next = e.ID
		}
	}
	return r
}

func (r *fakeEquipoRepo) GetAll(context.Context, types.Filter) ([]entities.Equipo, uint64, error) {
	r.reads++
	out := make([]entities.Equipo, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeEquipoRepo) FindByID(_ context.Context, id uint64) (*entities.Equipo, error) {
	r.reads++
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipoRepo) Create(_ context.Context, e entities.Equipo) (uint64, error) {
	r.next++
	e.ID = r.next
	r.items[e.ID] = e
	return e.ID, nil
}

func (r *fakeEquipoRepo) Update(_ context.Context, e entities.Equipo) error {
	if _, ok := r.items[e.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[e.ID] = e
	return nil
}

func (r *fakeEquipoRepo) UpdateEstado(_ context.Context, id uint64, estado string) error {
	e, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Estado = estado
	r.items[id] = e
	return nil
}

func (r *fakeEquipoRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// --- ordenes

type fakeOrdenRepo struct {
	items map[uint64]entities.OrdenServicio
	next  uint64
	reads int
}

func newFakeOrdenRepo(items ...entities.OrdenServicio) *fakeOrdenRepo {
	r := &fakeOrdenRepo{items: map[uint64]entities.OrdenServicio{}}
	for _, o := range items {
		r.items[o.ID] = o
		if o.ID > r.next {
			r.next = o.ID
		}
	}
	return r
}

func (r *fakeOrdenRepo) GetAll(context.Context, types.Filter) ([]entities.OrdenServicio, uint64, error) {
	r.reads++
	out := make([]entities.OrdenServicio, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeOrdenRepo) FindByID(_ context.Context, id uint64) (*entities.OrdenServicio, error) {
	r.reads++
	o, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrdenRepo) FindByQRToken(_ context.Context, token string) (*entities.OrdenServicio, error) {
	for _, o := range r.items {
		if o.QRToken == token {
			o := o
			return &o, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeOrdenRepo) Create(_ context.Context, o entities.OrdenServicio) (uint64, error) {
	r.next++
	o.ID = r.next
	o.Codigo = entities.CodigoOrden(o.ID)
	r.items[o.ID] = o
	return o.ID, nil
}

func (r *fakeOrdenRepo) Update(_ context.Context, o entities.OrdenServicio) error {
	if _, ok := r.items[o.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[o.ID] = o
	return nil
}

func (r *fakeOrdenRepo) UpdateEstado(_ context.Context, id uint64, estado constants.Estado) error {
	o, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	o.Estado = estado
	r.items[id] = o
	return nil
}

func (r *fakeOrdenRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// --- visitas

type fakeVisitaRepo struct {
	items map[uint64]entities.Visita
	next  uint64
	reads int
}

func newFakeVisitaRepo(items ...entities.Visita) *fakeVisitaRepo {
	r := &fakeVisitaRepo{items: map[uint64]entities.Visita{}}
	for _, v := range items {
		r.items[v.ID] = v
		if v.ID > r.next {
			r.next = v.ID
		}
	}
	return r
}

func (r *fakeVisitaRepo) GetAll(context.Context, types.Filter) ([]entities.Visita, uint64, error) {
	out := make([]entities.Visita, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeVisitaRepo) FindByID(_ context.Context, id uint64) (*entities.Visita, error) {
	r.reads++
	v, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (r *fakeVisitaRepo) Create(_ context.Context, v entities.Visita) (uint64, error) {
	r.next++
	v.ID = r.next
	r.items[v.ID] = v
	return v.ID, nil
}

func (r *fakeVisitaRepo) RegistrarCheckIn(_ context.Context, id uint64, m entities.Marca) error {
	v, ok := r.items[id]
	if !ok || v.Estado != constants.EstadoProgramada {
		return apperrors.ErrNotFound
	}
	v.Estado = constants.EstadoEnCurso
	v.CheckInAt = null.TimeFrom(m.At)
	v.CheckInLatitud = null.Float64From(m.Latitud)
	v.CheckInLongitud = null.Float64From(m.Longitud)
	v.CheckInDistancia = null.Float64From(m.Distancia)
	r.items[id] = v
	return nil
}

func (r *fakeVisitaRepo) RegistrarCheckOut(_ context.Context, id uint64, m entities.Marca, obs null.String) error {
	v, ok := r.items[id]
	if !ok || v.Estado != constants.EstadoEnCurso {
		return apperrors.ErrNotFound
	}
	v.Estado = constants.EstadoCompletada
	v.CheckOutAt = null.TimeFrom(m.At)
	v.CheckOutDistancia = null.Float64From(m.Distancia)
	v.Observaciones = obs
	r.items[id] = v
	return nil
}

func (r *fakeVisitaRepo) UpdateEstado(_ context.Context, id uint64, desde, hacia constants.Estado) error {
	v, ok := r.items[id]
	if !ok || v.Estado != desde {
		return apperrors.ErrNotFound
	}
	v.Estado = hacia
	r.items[id] = v
	return nil
}

// --- solicitudes de servicio

type fakeSolicitudServicioRepo struct {
	items map[uint64]entities.SolicitudServicio
	next  uint64
}

func (r *fakeSolicitudServicioRepo) GetAll(context.Context, types.Filter) ([]entities.SolicitudServicio, uint64, error) {
	out := make([]entities.SolicitudServicio, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeSolicitudServicioRepo) FindByID(_ context.Context, id uint64) (*entities.SolicitudServicio, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSolicitudServicioRepo) Create(_ context.Context, s entities.SolicitudServicio) (uint64, error) {
	if r.items == nil {
		r.items = map[uint64]entities.SolicitudServicio{}
	}
	r.next++
	s.ID = r.next
	r.items[s.ID] = s
	return s.ID, nil
}

func (r *fakeSolicitudServicioRepo) Update(_ context.Context, s entities.SolicitudServicio) error {
	r.items[s.ID] = s
	return nil
}

func (r *fakeSolicitudServicioRepo) UpdateEstado(_ context.Context, id uint64, estado constants.Estado) error {
	s, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.Estado = estado
	r.items[id] = s
	return nil
}

// --- bodega

type fakeBodegaRepo struct {
	items map[uint64]entities.SolicitudBodega
	next  uint64
}

func (r *fakeBodegaRepo) GetAll(context.Context, types.Filter) ([]entities.SolicitudBodega, uint64, error) {
	out := make([]entities.SolicitudBodega, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeBodegaRepo) FindByID(_ context.Context, id uint64) (*entities.SolicitudBodega, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *fakeBodegaRepo) Create(_ context.Context, s entities.SolicitudBodega) (uint64, error) {
	if r.items == nil {
		r.items = map[uint64]entities.SolicitudBodega{}
	}
	r.next++
	s.ID = r.next
	r.items[s.ID] = s
	return s.ID, nil
}

func (r *fakeBodegaRepo) AddItems(_ context.Context, id uint64, items []entities.SolicitudBodegaItem) error {
	s := r.items[id]
	for _, it := range items {
		it.SolicitudID = id
		s.Items = append(s.Items, it)
	}
	r.items[id] = s
	return nil
}

func (r *fakeBodegaRepo) UpdateEstado(_ context.Context, id uint64, estado constants.Estado) error {
	s, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.Estado = estado
	r.items[id] = s
	return nil
}

// --- bajas

type fakeBajaRepo struct {
	items      map[uint64]entities.SolicitudBaja
	evidencias map[uint64]entities.Evidencia
	next       uint64
	failAdd    bool
}

func newFakeBajaRepo(items ...entities.SolicitudBaja) *fakeBajaRepo {
	r := &fakeBajaRepo{items: map[uint64]entities.SolicitudBaja{}, evidencias: map[uint64]entities.Evidencia{}}
	for _, s := range items {
		r.items[s.ID] = s
		if s.ID > r.next {
			r.next = s.ID
		}
	}
	return r
}

func (r *fakeBajaRepo) GetAll(context.Context, types.Filter) ([]entities.SolicitudBaja, uint64, error) {
	out := make([]entities.SolicitudBaja, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeBajaRepo) FindByID(_ context.Context, id uint64) (*entities.SolicitudBaja, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *fakeBajaRepo) Create(_ context.Context, s entities.SolicitudBaja) (uint64, error) {
	r.next++
	s.ID = r.next
	r.items[s.ID] = s
	return s.ID, nil
}

func (r *fakeBajaRepo) UpdateEstado(_ context.Context, id uint64, estado constants.Estado) error {
	s, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.Estado = estado
	r.items[id] = s
	return nil
}

func (r *fakeBajaRepo) AddEvidencia(_ context.Context, e entities.Evidencia) (uint64, error) {
	if r.failAdd {
		return 0, apperrors.ErrInternalServer
	}
	e.ID = uint64(len(r.evidencias) + 1)
	r.evidencias[e.ID] = e
	return e.ID, nil
}

func (r *fakeBajaRepo) FindEvidencia(_ context.Context, solicitudID, evidenciaID uint64) (*entities.Evidencia, error) {
	e, ok := r.evidencias[evidenciaID]
	if !ok || e.SolicitudID != solicitudID {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeBajaRepo) DeleteEvidencia(_ context.Context, evidenciaID uint64) error {
	delete(r.evidencias, evidenciaID)
	return nil
}

// --- usuarios

type fakeUsuarioRepo struct {
	items map[uint64]entities.Usuario
}

func (r *fakeUsuarioRepo) GetAll(context.Context, types.Filter) ([]entities.Usuario, uint64, error) {
	return nil, 0, nil
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uint64) (*entities.Usuario, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUsuarioRepo) FindByEmail(_ context.Context, email string) (*entities.Usuario, error) {
	for _, u := range r.items {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u entities.Usuario) (uint64, error) {
	u.ID = uint64(len(r.items) + 1)
	r.items[u.ID] = u
	return u.ID, nil
}

// --- informes

type fakeInformeRepo struct {
	counts map[string][]entities.ConteoEstado
	rows   []entities.VisitaReporteRow
	calls  int
	last   entities.VisitaReportFilter
}

func (r *fakeInformeRepo) CountByEstado(_ context.Context, table string) ([]entities.ConteoEstado, error) {
	r.calls++
	return r.counts[table], nil
}

func (r *fakeInformeRepo) GetVisitasReport(_ context.Context, filter entities.VisitaReportFilter) ([]entities.VisitaReporteRow, error) {
	r.calls++
	r.last = filter
	return r.rows, nil
}
