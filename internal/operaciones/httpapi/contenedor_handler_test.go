// README: Handler tests for the contenedor CRUD endpoints.
package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/httpapi"
)

type stubContRepo struct {
	cont    *contenedor.Contenedor
	deleted []int64
}

func (s *stubContRepo) List(ctx context.Context) ([]contenedor.Contenedor, error) {
	if s.cont == nil {
		return nil, nil
	}
	return []contenedor.Contenedor{*s.cont}, nil
}

func (s *stubContRepo) Get(ctx context.Context, id int64) (*contenedor.Contenedor, error) {
	if s.cont == nil || s.cont.ID != id {
		return nil, contenedor.ErrNotFound
	}
	return s.cont, nil
}

func (s *stubContRepo) Create(ctx context.Context, c *contenedor.Contenedor) error {
	c.ID = 1
	return nil
}

func (s *stubContRepo) Update(ctx context.Context, c *contenedor.Contenedor) error {
	if s.cont == nil || s.cont.ID != c.ID {
		return contenedor.ErrNotFound
	}
	s.cont = c
	return nil
}

func (s *stubContRepo) Delete(ctx context.Context, id int64) error {
	if s.cont == nil || s.cont.ID != id {
		return contenedor.ErrNotFound
	}
	s.deleted = append(s.deleted, id)
	s.cont = nil
	return nil
}

func (s *stubContRepo) ListPendientes(ctx context.Context) ([]contenedor.Pendiente, error) {
	return nil, nil
}

func buildContenedorRouter(repo *stubContRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return httpapi.NewRouter(httpapi.RouterDeps{
		Contenedores: contenedor.NewService(repo),
		Log:          zap.NewNop(),
	})
}

func TestUpdateContenedor(t *testing.T) {
	repo := &stubContRepo{cont: &contenedor.Contenedor{
		ID: 4, Numero: "C4", Peso: 500, Volumen: 3, ClienteID: 1,
	}}
	r := buildContenedorRouter(repo)

	w := doRequest(r, http.MethodPut, "/api/contenedores/4", map[string]any{
		"numero": "C4", "tipo": "REEFER", "peso": 650, "volumen": 4, "clienteId": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got contenedor.Contenedor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "REEFER", got.Tipo)
	assert.InDelta(t, 650.0, got.Peso, 0.001)
}

func TestUpdateContenedorUnknownIs404(t *testing.T) {
	r := buildContenedorRouter(&stubContRepo{})
	w := doRequest(r, http.MethodPut, "/api/contenedores/9", map[string]any{
		"numero": "C9", "peso": 100, "volumen": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteContenedor(t *testing.T) {
	repo := &stubContRepo{cont: &contenedor.Contenedor{ID: 4, Numero: "C4", Peso: 1, Volumen: 1}}
	r := buildContenedorRouter(repo)

	w := doRequest(r, http.MethodDelete, "/api/contenedores/4", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{4}, repo.deleted)
}
