package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantierpro/api/internal/models"
	"chantierpro/api/internal/repository"
)

type fakeServiceStore struct {
	byID map[string]models.Service
}

func (f *fakeServiceStore) List(_ context.Context, _ models.ServiceStatus, _, _ int) ([]models.Service, error) {
	return nil, nil
}

func (f *fakeServiceStore) GetByID(_ context.Context, id string) (models.Service, error) {
	svc, ok := f.byID[id]
	if !ok {
		return models.Service{}, repository.ErrNotFound
	}
	return svc, nil
}

func (f *fakeServiceStore) GetBySlug(_ context.Context, slug string) (models.Service, error) {
	for _, svc := range f.byID {
		if svc.Slug == slug {
			return svc, nil
		}
	}
	return models.Service{}, repository.ErrNotFound
}

func (f *fakeServiceStore) SlugExists(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeServiceStore) Create(_ context.Context, svc models.Service) error {
	f.byID[svc.ID] = svc
	return nil
}

func (f *fakeServiceStore) Update(_ context.Context, svc models.Service) error {
	f.byID[svc.ID] = svc
	return nil
}

func (f *fakeServiceStore) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeServiceStore) SetStatus(_ context.Context, id string, status models.ServiceStatus) error {
	svc := f.byID[id]
	svc.Status = status
	f.byID[id] = svc
	return nil
}

func toggleServiceStatus(t *testing.T, h HandlerSet, id string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.PATCH("/services/:id/toggle-status", h.ToggleServiceStatus)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/services/"+id+"/toggle-status", nil))
	return w
}

func TestToggleServiceStatusDoubleInvocationRestoresState(t *testing.T) {
	store := &fakeServiceStore{byID: map[string]models.Service{
		"svc-1": {ID: "svc-1", Title: "Toiture", Slug: "toiture", Status: models.ServiceStatusActive},
	}}
	h := HandlerSet{log: zerolog.Nop(), services: store}

	w := toggleServiceStatus(t, h, "svc-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inactive")
	assert.Equal(t, models.ServiceStatusInactive, store.byID["svc-1"].Status)

	w = toggleServiceStatus(t, h, "svc-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ServiceStatusActive, store.byID["svc-1"].Status)
}

func TestToggleServiceStatusUnknownID(t *testing.T) {
	store := &fakeServiceStore{byID: map[string]models.Service{}}
	h := HandlerSet{log: zerolog.Nop(), services: store}

	w := toggleServiceStatus(t, h, "missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestGetServiceHidesInactive(t *testing.T) {
	store := &fakeServiceStore{byID: map[string]models.Service{
		"svc-1": {ID: "svc-1", Title: "Excavation", Slug: "excavation", Status: models.ServiceStatusInactive},
	}}
	h := HandlerSet{log: zerolog.Nop(), services: store}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/services/:slug", h.GetService)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services/excavation", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
