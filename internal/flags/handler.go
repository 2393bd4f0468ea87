package flags

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/shared/server/middleware"
	"leasing-backend/internal/shared/server/respond"
)

// Handler exposes the flag store over HTTP. Reads are open to any caller,
// mutations require the admin role.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/flags", h.list)
	admin := rg.Group("/flags", middleware.RequireRole(middleware.RoleAdmin))
	admin.PUT("/:name", h.set)
	admin.POST("/:name/toggle", h.toggle)
	admin.POST("/reset", h.reset)
	registerGatedSections(rg, h.store)
}

type flagResponse struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Default bool   `json:"default"`
}

type setFlagRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"flags": h.snapshot()})
}

func (h *Handler) set(c *gin.Context) {
	var req setFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "enabled is required", nil)
		return
	}

	f := Flag(c.Param("name"))
	var err error
	if *req.Enabled {
		err = h.store.Enable(c.Request.Context(), f)
	} else {
		err = h.store.Disable(c.Request.Context(), f)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, h.one(f))
}

func (h *Handler) toggle(c *gin.Context) {
	f := Flag(c.Param("name"))
	if _, err := h.store.Toggle(c.Request.Context(), f); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, h.one(f))
}

func (h *Handler) reset(c *gin.Context) {
	if err := h.store.ResetToDefaults(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"flags": h.snapshot()})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrUnknownFlag) {
		respond.Error(c, http.StatusNotFound, "unknown_flag", "Unknown feature flag", gin.H{"name": c.Param("name")})
		return
	}
	respond.Internal(c, err)
}

func (h *Handler) one(f Flag) flagResponse {
	return flagResponse{Name: string(f), Enabled: h.store.IsEnabled(f), Default: h.store.Default(f)}
}

func (h *Handler) snapshot() []flagResponse {
	values := h.store.Snapshot()
	out := make([]flagResponse, 0, len(values))
	for _, f := range All() {
		if _, ok := values[f]; !ok {
			continue
		}
		out = append(out, flagResponse{Name: string(f), Enabled: values[f], Default: h.store.Default(f)})
	}
	return out
}
