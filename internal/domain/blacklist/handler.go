package blacklist

import (
	"log/slog"
	"net/http"
	"strconv"

	"bouncelist/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the blacklist domain.
type Handler struct {
	service *Service
}

// NewHandler creates a new blacklist handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// IngestNotification handles POST /:tenantID/sns-endpoint.
//
// The response shapes are the ones the notification source and its operators
// already depend on: a bare "ok" for every acknowledged no-op, and
// status:success/fail/error JSON for the persistence outcomes.
func (h *Handler) IngestNotification(c *gin.Context) {
	tenantID, err := parseTenantID(c.Param("tenantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		slog.Error("reading notification body failed", "tenant_id", tenantID, "error", err)
		c.String(http.StatusOK, "ok")
		return
	}

	res := h.service.Ingest(c.Request.Context(), tenantID, body)

	switch res.Outcome {
	case OutcomePersisted:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	case OutcomeDuplicate:
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": res.Err.Error(),
		})
	case OutcomeStoreFailed:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": res.Err.Error(),
		})
	default:
		c.String(http.StatusOK, "ok")
	}
}

// IsBlacklisted handles GET /:tenantID/is-blacklisted/:email.
func (h *Handler) IsBlacklisted(c *gin.Context) {
	tenantID, err := parseTenantID(c.Param("tenantID"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	email := c.Param("email")
	blacklisted, err := h.service.IsBlacklisted(c.Request.Context(), tenantID, email)
	if err != nil {
		slog.Error("blacklist lookup failed",
			"tenant_id", tenantID,
			"email", email,
			"error", err,
		)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, gin.H{"blacklisted": blacklisted})
}

func parseTenantID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("tenant id must be a positive integer")
	}
	return id, nil
}
