package networth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wealth-backend/internal/shared/server/respond"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches net-worth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/net-worth", h.create)
	rg.GET("/net-worth/history", h.history)
	rg.GET("/net-worth/latest", h.latest)
	rg.GET("/net-worth/export", h.export)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Value == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "value is required", nil)
		return
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	snap, err := h.Svc.Create(c.Request.Context(), *req.Value, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create net worth entry", nil)
		}
		return
	}
	respond.Created(c, toResponse(snap))
}

func (h *Handler) history(c *gin.Context) {
	list, err := h.Svc.History(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list net worth history", nil)
		return
	}
	respond.OK(c, toResponses(list))
}

func (h *Handler) latest(c *gin.Context) {
	snap, err := h.Svc.Latest(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "No net worth entries found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch latest net worth", nil)
		}
		return
	}
	respond.OK(c, toResponse(snap))
}

func (h *Handler) export(c *gin.Context) {
	data, err := h.Svc.ExportXLSX(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export net worth history", nil)
		return
	}
	name := "net-worth-" + time.Now().UTC().Format("20060102") + ".xlsx"
	respond.Attachment(c, name, xlsxContentType, data)
}
