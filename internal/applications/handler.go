package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/shared/server/middleware"
	"leasing-backend/internal/shared/server/respond"
	"leasing-backend/internal/shared/transition"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.submit)
	rg.GET("/applications/:id", h.get)
	rg.POST("/applications/:id/status", h.decide)
	rg.GET("/properties/:id/applications", middleware.RequireRole(middleware.RoleOwner, middleware.RoleAdmin), h.listByProperty)
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.Submit(c.Request.Context(), SubmitInput{
		PropertyID:  req.PropertyID,
		ApplicantID: middleware.UserIDFromContext(c),
		GuarantorID: req.GuarantorID,
		Message:     req.Message,
		Snapshot:    req.Snapshot,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(middleware.ApplicationIDKey, app.ID)
	respond.Created(c, toResponse(app))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ApplicationIDKey, id)
	app, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond.OK(c, toResponse(app))
}

func (h *Handler) listByProperty(c *gin.Context) {
	apps, err := h.Svc.ListByProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, toResponse(app))
	}
	respond.OK(c, gin.H{"applications": resp})
}

func (h *Handler) decide(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ApplicationIDKey, id)

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status must be pending, approved or rejected", nil)
		return
	}

	app, err := h.Svc.Decide(c.Request.Context(), id, req.Status, Actor{
		ID:   middleware.UserIDFromContext(c),
		Role: Role(middleware.RoleFromContext(c)),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(middleware.StatusTransitionKey, transition.Label(StatusPending, app.Status))
	respond.OK(c, toResponse(app))
}

func fail(c *gin.Context, err error) {
	var terr *transition.Error
	switch {
	case errors.As(err, &terr):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), gin.H{"from": terr.From, "to": terr.To})
	case errors.Is(err, ErrForbiddenActor):
		respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, ErrInvalidRUT), errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "duplicate_application", err.Error(), nil)
	case errors.Is(err, ErrStatusConflict):
		respond.Error(c, http.StatusConflict, "status_conflict", "application status changed, reload and retry", nil)
	case errors.Is(err, ErrFeatureDisabled):
		respond.Error(c, http.StatusForbidden, "feature_disabled", "feature is disabled", nil)
	default:
		respond.Internal(c, err)
	}
}
