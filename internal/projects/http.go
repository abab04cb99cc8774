package projects

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio-web/internal/auth"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the protected project routes on rg. The auth gate is
// applied by the caller; handlers assume an authenticated request.
func Register(rg *gin.RouterGroup, store Store) {
	h := NewHandler(store)

	rg.GET("", h.list)
	rg.GET("/new", h.newForm)
	rg.POST("", h.create)
	rg.GET("/:id/edit", h.editForm)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// projectForm is the typed decoding boundary for user-supplied fields. A
// blank title fails binding before any store call.
type projectForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
}

// Home renders the public landing page with every project. Registered on
// the root route outside the auth gate.
func (h *Handler) Home(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=list_projects error=%v", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Projects": items,
		"Identity": auth.CurrentIdentity(c),
	})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=list_projects error=%v", err)
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.HTML(http.StatusOK, "projects.html", gin.H{"Projects": items})
}

func (h *Handler) newForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new-project.html", nil)
}

func (h *Handler) create(c *gin.Context) {
	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "title is required")
		return
	}

	if _, err := h.store.Create(c.Request.Context(), form.Title, form.Description); err != nil {
		log.Printf("[error] operation=create_project error=%v", err)
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.Redirect(http.StatusFound, "/projects")
}

func (h *Handler) editForm(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	p, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.String(http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		log.Printf("[error] operation=get_project id=%d error=%v", id, err)
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.HTML(http.StatusOK, "edit-project.html", gin.H{"Project": p})
}

// update is a silent no-op on a missing id: the row count is ignored and
// the client is redirected either way.
func (h *Handler) update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "title is required")
		return
	}

	if _, err := h.store.Update(c.Request.Context(), id, form.Title, form.Description); err != nil {
		log.Printf("[error] operation=update_project id=%d error=%v", id, err)
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.Redirect(http.StatusFound, "/projects")
}

// delete is idempotent; a second delete of the same id redirects the same
// way with nothing to do.
func (h *Handler) delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if _, err := h.store.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[error] operation=delete_project id=%d error=%v", id, err)
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.Redirect(http.StatusFound, "/projects")
}

func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid project id")
		return 0, false
	}
	return id, true
}
