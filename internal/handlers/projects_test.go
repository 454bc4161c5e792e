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

type fakeProjectStore struct {
	byID       map[string]models.Project
	lastFilter repository.ProjectFilter
}

func (f *fakeProjectStore) List(_ context.Context, filter repository.ProjectFilter) ([]models.Project, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, id string) (models.Project, error) {
	project, ok := f.byID[id]
	if !ok {
		return models.Project{}, repository.ErrNotFound
	}
	return project, nil
}

func (f *fakeProjectStore) GetBySlug(_ context.Context, slug string) (models.Project, error) {
	for _, project := range f.byID {
		if project.Slug == slug {
			return project, nil
		}
	}
	return models.Project{}, repository.ErrNotFound
}

func (f *fakeProjectStore) SlugExists(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeProjectStore) Create(_ context.Context, project models.Project) error {
	f.byID[project.ID] = project
	return nil
}

func (f *fakeProjectStore) Update(_ context.Context, project models.Project) error {
	f.byID[project.ID] = project
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeProjectStore) SetFeatured(_ context.Context, id string, featured bool) error {
	project := f.byID[id]
	project.Featured = featured
	f.byID[id] = project
	return nil
}

func (f *fakeProjectStore) SetStatus(_ context.Context, id string, status models.PublishStatus) error {
	project := f.byID[id]
	project.Status = status
	f.byID[id] = project
	return nil
}

func projectRouter(h HandlerSet) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/projects", h.ListProjects)
	router.PATCH("/projects/:id/publish", h.ToggleProjectStatus)
	return router
}

func TestListProjectsForcesPublishedStatus(t *testing.T) {
	store := &fakeProjectStore{byID: map[string]models.Project{}}
	h := HandlerSet{log: zerolog.Nop(), projects: store}
	router := projectRouter(h)

	// A status override in the query must not leak into the public listing.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects?category=residentiel&status=draft", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PublishStatusPublished, store.lastFilter.Status)
	assert.Equal(t, "residentiel", store.lastFilter.Category)
	assert.Nil(t, store.lastFilter.Featured)
}

func TestListProjectsFeaturedFlag(t *testing.T) {
	store := &fakeProjectStore{byID: map[string]models.Project{}}
	h := HandlerSet{log: zerolog.Nop(), projects: store}
	router := projectRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects?featured=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.lastFilter.Featured)
	assert.True(t, *store.lastFilter.Featured)
	assert.Equal(t, models.PublishStatusPublished, store.lastFilter.Status)
}

func TestToggleProjectStatusDoubleInvocationRestoresState(t *testing.T) {
	store := &fakeProjectStore{byID: map[string]models.Project{
		"prj-1": {ID: "prj-1", Title: "Agrandissement", Slug: "agrandissement", Status: models.PublishStatusDraft},
	}}
	h := HandlerSet{log: zerolog.Nop(), projects: store}
	router := projectRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/projects/prj-1/publish", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PublishStatusPublished, store.byID["prj-1"].Status)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/projects/prj-1/publish", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PublishStatusDraft, store.byID["prj-1"].Status)
}
