package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/httpresp"
	"github.com/platefleet/scheduling/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the newest audit entries for the token's branch. ?action and
// ?entity narrow the trail; ?limit caps the page (default 50, max 200).
func (h *AuditLogsHandler) List(c *gin.Context) {
	branchID := tokenBranchID(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httperr.BadRequest(c, "invalid_limit", "'limit' must be a positive integer")
			return
		}
		if n > 200 {
			n = 200
		}
		limit = n
	}

	q := h.db.Model(&models.AuditLog{}).
		Where("branch_id = ?", branchID).
		Order("id DESC").
		Limit(limit)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list audit logs")
		return
	}

	httpresp.List(c, logs)
}
