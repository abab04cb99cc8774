package projects

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is the in-memory Store used to test handlers in isolation.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]Project
	order  []int64
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[int64]Project)}
}

func (f *fakeStore) Create(_ context.Context, title, description string) (*Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	p := Project{ID: f.nextID, Title: title, Description: description}
	f.items[p.ID] = p
	f.order = append(f.order, p.ID)
	return &p, nil
}

func (f *fakeStore) List(_ context.Context) ([]Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Project, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (*Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, title, description string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return false, nil
	}
	p.Title, p.Description = title, description
	f.items[id] = p
	return true, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")

	h := NewHandler(store)
	r.GET("/", h.Home)
	Register(r.Group("/projects"), store)
	return r
}

func postForm(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHomeListsProjects(t *testing.T) {
	store := newFakeStore()
	_, err := store.Create(context.Background(), "Site redesign", "New landing page")
	require.NoError(t, err)

	w := get(newTestRouter(store), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Site redesign")
	assert.Contains(t, w.Body.String(), "New landing page")
}

func TestHomeStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")

	w := get(newTestRouter(store), "/")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error", w.Body.String())
}

func TestCreateProject(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	w := postForm(r, http.MethodPost, "/projects", url.Values{
		"title":       {"Foo"},
		"description": {"Bar"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/projects", w.Header().Get("Location"))

	list := get(r, "/projects")
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Foo")
	assert.Contains(t, list.Body.String(), "Bar")
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	postForm(r, http.MethodPost, "/projects", url.Values{"title": {"One"}})
	postForm(r, http.MethodPost, "/projects", url.Values{"title": {"Two"}})

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestCreateMissingTitle(t *testing.T) {
	store := newFakeStore()

	w := postForm(newTestRouter(store), http.MethodPost, "/projects", url.Values{
		"description": {"no title here"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.items)
}

func TestNewProjectForm(t *testing.T) {
	w := get(newTestRouter(newFakeStore()), "/projects/new")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/projects"`)
}

func TestEditFormRoundTrip(t *testing.T) {
	store := newFakeStore()
	_, err := store.Create(context.Background(), "Foo", "Bar")
	require.NoError(t, err)

	w := get(newTestRouter(store), "/projects/1/edit")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Foo"`)
	assert.Contains(t, w.Body.String(), ">Bar</textarea>")
	assert.Contains(t, w.Body.String(), "_method=PUT")
}

func TestEditFormMissingProject(t *testing.T) {
	w := get(newTestRouter(newFakeStore()), "/projects/42/edit")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditFormBadID(t *testing.T) {
	w := get(newTestRouter(newFakeStore()), "/projects/abc/edit")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateChangesOnlyTargetRow(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	_, err := store.Create(ctx, "Keep", "untouched")
	require.NoError(t, err)
	_, err = store.Create(ctx, "Old", "old desc")
	require.NoError(t, err)

	w := postForm(newTestRouter(store), http.MethodPut, "/projects/2", url.Values{
		"title":       {"New"},
		"description": {"new desc"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/projects", w.Header().Get("Location"))

	assert.Equal(t, "Keep", store.items[1].Title)
	assert.Equal(t, "untouched", store.items[1].Description)
	assert.Equal(t, "New", store.items[2].Title)
	assert.Equal(t, "new desc", store.items[2].Description)
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	store := newFakeStore()
	_, err := store.Create(context.Background(), "Only", "row")
	require.NoError(t, err)

	w := postForm(newTestRouter(store), http.MethodPut, "/projects/99", url.Values{
		"title": {"Ghost"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, store.items, 1)
	assert.Equal(t, "Only", store.items[1].Title)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newFakeStore()
	_, err := store.Create(context.Background(), "Doomed", "")
	require.NoError(t, err)
	r := newTestRouter(store)

	w := postForm(r, http.MethodDelete, "/projects/1", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, store.items)

	// The second delete finds nothing and is still a clean redirect.
	w = postForm(r, http.MethodDelete, "/projects/1", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/projects", w.Header().Get("Location"))
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	store := newFakeStore()
	_, err := store.Create(context.Background(), "Survivor", "")
	require.NoError(t, err)

	w := postForm(newTestRouter(store), http.MethodDelete, "/projects/123", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, store.items, 1)
}
