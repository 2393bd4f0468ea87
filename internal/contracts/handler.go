package contracts

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

// RegisterRoutes attaches contract routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/contracts/:id", h.get)
	rg.GET("/applications/:id/contract", h.byApplication)
	rg.POST("/contracts/:id/status", middleware.RequireRole(middleware.RoleOwner, middleware.RoleAdmin), h.changeStatus)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ContractIDKey, id)
	contract, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond.OK(c, toResponse(contract))
}

func (h *Handler) byApplication(c *gin.Context) {
	appID := c.Param("id")
	c.Set(middleware.ApplicationIDKey, appID)
	contract, err := h.Svc.GetByApplication(c.Request.Context(), appID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(middleware.ContractIDKey, contract.ID)
	respond.OK(c, toResponse(contract))
}

func (h *Handler) changeStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ContractIDKey, id)

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Current.Valid() || !req.Status.Valid() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "currentStatus and status must be valid contract statuses", nil)
		return
	}

	contract, err := h.Svc.ChangeStatus(c.Request.Context(), id, req.Current, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(middleware.StatusTransitionKey, transition.Label(req.Current, req.Status))
	respond.OK(c, toResponse(contract))
}

func fail(c *gin.Context, err error) {
	var terr *transition.Error
	switch {
	case errors.As(err, &terr):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), gin.H{"from": terr.From, "to": terr.To})
	case errors.Is(err, ErrStatusConflict):
		respond.Error(c, http.StatusConflict, "status_conflict", "contract status changed, reload and retry", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "contract not found", nil)
	case errors.Is(err, ErrFeatureDisabled):
		respond.Error(c, http.StatusForbidden, "feature_disabled", "feature is disabled", nil)
	default:
		respond.Internal(c, err)
	}
}
