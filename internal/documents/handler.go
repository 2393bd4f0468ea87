package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/flags"
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

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/document-types", h.types)
	rg.POST("/documents/validate", h.validate)
	rg.POST("/documents", h.create)
	rg.GET("/documents", h.list)
	rg.GET("/documents/summary", h.summary)
	rg.GET("/documents/:id", h.get)
	rg.POST("/documents/:id/review", middleware.RequireRole(middleware.RoleOwner, middleware.RoleAdmin), h.review)
}

func (h *Handler) types(c *gin.Context) {
	category := Category(strings.TrimSpace(c.Query("category")))
	cfgs := TypesInCategory(category)
	resp := make([]TypeResponse, 0, len(cfgs))
	for _, cfg := range cfgs {
		resp = append(resp, toTypeResponse(cfg))
	}
	respond.OK(c, gin.H{"types": resp})
}

func (h *Handler) validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	result, err := h.Svc.Validate(req.File, req.Type)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, result, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Owner: OwnerScope{Type: req.OwnerType, ID: req.OwnerID},
		Type:  req.Type,
		File:  req.File,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.DocumentIDKey, doc.ID)
	respond.Created(c, createResponse{
		Document: h.render(doc),
		Warnings: result.Warnings,
	})
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context(), ownerFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, h.render(doc))
	}
	respond.OK(c, gin.H{"documents": resp})
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.Svc.Summary(c.Request.Context(), ownerFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, sum)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.DocumentIDKey, id)
	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, h.render(doc))
}

func (h *Handler) review(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.DocumentIDKey, id)

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Review(c.Request.Context(), id, ReviewInput{
		Decision:   req.Status,
		ReviewedBy: middleware.UserIDFromContext(c),
		Reason:     req.Reason,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.StatusTransitionKey, transition.Label(StatusPending, doc.Status))
	respond.OK(c, h.render(doc))
}

func (h *Handler) render(doc Document) DocumentResponse {
	return toResponse(doc, h.Svc.now(), flags.Enabled(h.Svc.Flags, flags.ExpirationTracking))
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	var terr *transition.Error
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusUnprocessableEntity, "validation_failed", "File does not meet the document policy",
			gin.H{"errors": verr.Errors, "warnings": verr.Warnings})
	case errors.As(err, &terr):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), gin.H{"from": terr.From, "to": terr.To})
	case errors.Is(err, ErrUnknownDocumentType):
		respond.Error(c, http.StatusBadRequest, "unknown_document_type", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrStatusConflict):
		respond.Error(c, http.StatusConflict, "status_conflict", "document status changed, reload and retry", nil)
	case errors.Is(err, ErrFeatureDisabled):
		respond.Error(c, http.StatusForbidden, "feature_disabled", "feature is disabled", nil)
	default:
		respond.Internal(c, err)
	}
}

func ownerFromQuery(c *gin.Context) OwnerScope {
	return OwnerScope{
		Type: OwnerType(strings.TrimSpace(c.Query("ownerType"))),
		ID:   strings.TrimSpace(c.Query("ownerId")),
	}
}

