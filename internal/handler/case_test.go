package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuntur-detector/case-service/internal/alarmsvc"
	"github.com/kuntur-detector/case-service/internal/handler"
	"github.com/kuntur-detector/case-service/internal/kafka"
	"github.com/kuntur-detector/case-service/internal/model"
	"github.com/kuntur-detector/case-service/internal/router"
	"github.com/kuntur-detector/case-service/internal/service"
	"github.com/kuntur-detector/case-service/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "casos.json"))
	svc := service.NewCaseService(store)
	require.NoError(t, svc.Init(t.Context()))
	h := handler.NewCaseHandler(svc, kafka.NewProducer(nil, ""), alarmsvc.NewClient(""))
	return router.New(h)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func validBody() map[string]string {
	return map[string]string{
		"id_alarma":        "AL23072504",
		"nombre_agente":    "Juan Pérez",
		"cedula_agente":    "1723456789",
		"nombre_victima":   "María López",
		"cedula_victima":   "1712345678",
		"informe_policial": "Robo reportado en la zona centro",
	}
}

func TestCreateCase(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/casos", validBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "CASO-0001", created.CaseID)
	assert.Equal(t, "AL23072504", created.AlarmID)
	assert.Equal(t, model.CaseStatusOpen, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateCaseMissingField(t *testing.T) {
	srv := newTestServer(t)

	body := validBody()
	delete(body, "cedula_victima")
	w := doJSON(t, srv, http.MethodPost, "/api/casos", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cedula_victima", resp["field"])
	assert.Contains(t, resp["error"], "cedula_victima")

	// Nothing was stored.
	w = doJSON(t, srv, http.MethodGet, "/api/casos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListCasesWithFilters(t *testing.T) {
	srv := newTestServer(t)

	for _, alarm := range []string{"A1", "A2", "A1"} {
		body := validBody()
		body["id_alarma"] = alarm
		w := doJSON(t, srv, http.MethodPost, "/api/casos", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, srv, http.MethodGet, "/api/casos?id_alarma=A1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cases []model.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cases))
	require.Len(t, cases, 2)
	assert.Equal(t, "CASO-0001", cases[0].CaseID)
	assert.Equal(t, "CASO-0003", cases[1].CaseID)

	w = doJSON(t, srv, http.MethodGet, "/api/casos?id_caso=CASO-0002&id_alarma=A2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cases = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cases))
	require.Len(t, cases, 1)
	assert.Equal(t, "CASO-0002", cases[0].CaseID)
}

func TestGetCase(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/casos", validBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/casos/CASO-0001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "CASO-0001", got.CaseID)

	w = doJSON(t, srv, http.MethodGet, "/api/casos/CASO-9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CASO-9999")
}

func TestUpdateCase(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/casos", validBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, srv, http.MethodPut, "/api/casos/CASO-0001", map[string]interface{}{
		"id_caso":        "CASO-7777",
		"fecha_creacion": "2030-01-01T00:00:00Z",
		"estado":         "Cerrado",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "CASO-0001", updated.CaseID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, model.CaseStatusClosed, updated.Status)
	require.NotNil(t, updated.UpdatedAt)

	w = doJSON(t, srv, http.MethodPut, "/api/casos/CASO-9999", map[string]interface{}{
		"estado": "Cerrado",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCaseNoChanges(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/casos", validBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodPut, "/api/casos/CASO-0001", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthcheck(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/healthcheck", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/casos", nil)
	req.Header.Set("Origin", "http://localhost:19006")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
