package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/internal/services"
	"clinical-service/pkg/constants"
	"clinical-service/pkg/customvalidator"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/types"
	"clinical-service/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const qrToken = "3f1c2b9e-8a4d-4e7f-9c21-5b6a7d8e9f01"

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e := echo.New()
	e.Validator = utils.NewValidator(v)
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.HttpResponse {
	t.Helper()
	var body utils.HttpResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type fakeVisitaService struct {
	services.VisitaServiceInterface
	checkIn func(id uint64, payload dto.CheckInDTO) (*entities.Visita, error)
}

func (f *fakeVisitaService) CheckIn(_ context.Context, id uint64, payload dto.CheckInDTO) (*entities.Visita, error) {
	return f.checkIn(id, payload)
}

func TestVisitaController_CheckIn(t *testing.T) {
	var received dto.CheckInDTO
	svc := &fakeVisitaService{checkIn: func(id uint64, payload dto.CheckInDTO) (*entities.Visita, error) {
		received = payload
		if *payload.Latitud > 0 {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "Fuera del radio", apperrors.ErrOutsideGeofence,
				map[string]interface{}{"distancia": 250.0, "radio": 100.0})
		}
		return &entities.Visita{ID: id, Estado: constants.EstadoEnCurso}, nil
	}}
	e := newTestEcho(t)
	e.POST("/visitas/:id/check-in", NewVisitaController(svc, zap.NewNop()).CheckIn)

	cases := []struct {
		name string
		path string
		body string
		code int
	}{
		{"sin coordenadas", "/visitas/1/check-in", `{"qr_token":"` + qrToken + `"}`, http.StatusBadRequest},
		{"token no uuid", "/visitas/1/check-in", `{"qr_token":"abc","latitud":-33.4,"longitud":-70.6}`, http.StatusBadRequest},
		{"id inválido", "/visitas/x/check-in", `{}`, http.StatusBadRequest},
		{"fuera del radio", "/visitas/1/check-in", `{"qr_token":"` + qrToken + `","latitud":33.4,"longitud":-70.6}`, http.StatusUnprocessableEntity},
		{"ok", "/visitas/1/check-in", `{"qr_token":"` + qrToken + `","latitud":-33.4,"longitud":-70.6}`, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}

	assert.Equal(t, qrToken, received.QRToken)
}

func TestVisitaController_CheckIn_GeofenceDetails(t *testing.T) {
	svc := &fakeVisitaService{checkIn: func(uint64, dto.CheckInDTO) (*entities.Visita, error) {
		return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "Fuera del radio", apperrors.ErrOutsideGeofence,
			map[string]interface{}{"distancia": 250.0, "radio": 100.0})
	}}
	e := newTestEcho(t)
	e.POST("/visitas/:id/check-in", NewVisitaController(svc, zap.NewNop()).CheckIn)

	req := httptest.NewRequest(http.MethodPost, "/visitas/3/check-in",
		strings.NewReader(`{"qr_token":"`+qrToken+`","latitud":-33.4,"longitud":-70.6}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, 250.0, body.Details["distancia"])
	assert.Equal(t, 100.0, body.Details["radio"])
}

type fakeOrdenService struct {
	services.OrdenServicioServiceInterface
	lastFilter types.Filter
}

func (f *fakeOrdenService) GetAll(_ context.Context, filter types.Filter) (services.Page[entities.OrdenServicio], error) {
	f.lastFilter = filter
	return services.Page[entities.OrdenServicio]{
		Items: []entities.OrdenServicio{{ID: 1, Codigo: "OS-000001"}, {ID: 2, Codigo: "OS-000002"}},
		Total: 12,
	}, nil
}

func (f *fakeOrdenService) FindByQRToken(_ context.Context, token string) (*entities.OrdenServicio, error) {
	if token != qrToken {
		return nil, apperrors.ErrNotFound
	}
	return &entities.OrdenServicio{ID: 9, Codigo: "OS-000009"}, nil
}

func TestOrdenServicioController_GetOrdenes(t *testing.T) {
	svc := &fakeOrdenService{}
	e := newTestEcho(t)
	e.GET("/ordenes", NewOrdenServicioController(svc, zap.NewNop()).GetOrdenes)

	req := httptest.NewRequest(http.MethodGet, "/ordenes?filter[estado]=pendiente&limit=5&page=2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, uint64(12), body.Pagination.TotalCount)
	assert.Equal(t, uint64(3), body.Pagination.TotalPages)
	assert.Equal(t, "pendiente", svc.lastFilter.Get("estado"))
}

func TestOrdenServicioController_FindOrdenByQR(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/ordenes/qr/:token", NewOrdenServicioController(&fakeOrdenService{}, zap.NewNop()).FindOrdenByQR)

	for token, code := range map[string]int{
		"no-es-uuid":                           http.StatusBadRequest,
		"00000000-0000-4000-8000-000000000000": http.StatusNotFound,
		qrToken:                                http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/ordenes/qr/"+token, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code, token)
	}
}

type fakeInformeService struct {
	services.InformeServiceInterface
	lastQuery dto.VisitaReportQueryDTO
}

func (f *fakeInformeService) Visitas(_ context.Context, query dto.VisitaReportQueryDTO) ([]entities.VisitaReporteRow, error) {
	f.lastQuery = query
	return []entities.VisitaReporteRow{{VisitaID: 1}}, nil
}

func (f *fakeInformeService) VisitasWorkbook(_ context.Context, query dto.VisitaReportQueryDTO) (*excelize.File, error) {
	f.lastQuery = query
	wb := excelize.NewFile()
	_ = wb.SetCellValue("Sheet1", "A1", "Visita")
	return wb, nil
}

func TestInformeController_GetVisitas(t *testing.T) {
	svc := &fakeInformeService{}
	e := newTestEcho(t)
	e.GET("/informes/visitas", NewInformeController(svc, zap.NewNop()).GetVisitas)

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/informes/visitas?desde=2026-01-01&tecnico_id=4", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "2026-01-01", svc.lastQuery.Desde)
		assert.Equal(t, uint64(4), svc.lastQuery.TecnicoID)
	})

	t.Run("fecha inválida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/informes/visitas?desde=01-01-2026", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("xlsx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/informes/visitas?format=xlsx", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "visitas_")

		wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		v, err := wb.GetCellValue("Sheet1", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Visita", v)
	})
}

type fakeBajaService struct {
	services.SolicitudBajaServiceInterface
	fileName string
	content  string
}

func (f *fakeBajaService) AddEvidencia(_ context.Context, id uint64, file io.Reader, fileName string) (*entities.Evidencia, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.fileName, f.content = fileName, string(data)
	return &entities.Evidencia{ID: 1, SolicitudID: id, Nombre: fileName, URL: "/uploads/bajas/x.pdf"}, nil
}

func TestSolicitudBajaController_UploadEvidencia(t *testing.T) {
	svc := &fakeBajaService{}
	e := newTestEcho(t)
	e.POST("/bajas/:id/evidencias", NewSolicitudBajaController(svc, zap.NewNop()).UploadEvidencia)

	t.Run("sin archivo", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bajas/2/evidencias", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "informe-tecnico.pdf")
		require.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4 contenido"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/bajas/2/evidencias", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "informe-tecnico.pdf", svc.fileName)
		assert.Equal(t, "%PDF-1.4 contenido", svc.content)
	})
}
