package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mstepanov/contact-backend/internal/config"
	"github.com/mstepanov/contact-backend/internal/contact"
)

// Handlers provides the HTTP handlers for the API endpoints.
type Handlers struct {
	svc *contact.Service
	cfg *config.Config
	log *zerolog.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(svc *contact.Service, cfg *config.Config, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		svc: svc,
		cfg: cfg,
		log: logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a success acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health endpoint body.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports liveness. It does not consult the store or the relay;
// it answers 200 whenever the process is serving.
// GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// SubmitContact runs the submission pipeline and maps its errors to HTTP
// responses. This is the only place pipeline errors become status codes.
// POST /api/contact
func (h *Handlers) SubmitContact(c *gin.Context) {
	var in contact.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		// An unparsable body and an empty one look identical to the
		// client: no usable fields arrived.
		h.log.Debug().Err(err).Msg("malformed contact request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: contact.ErrMissingField.Message})
		return
	}

	_, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Message})
			return
		}

		h.log.Error().Err(err).Msg("contact submission failed")
		msg := "Server error"
		if h.cfg.Development() {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Message sent successfully"})
}
