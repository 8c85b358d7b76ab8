package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/httpresp"
	"github.com/platefleet/scheduling/internal/models"
	"github.com/platefleet/scheduling/internal/validators"
)

// AvailabilityHandler manages a staff member's recurring availability
// windows. Put replaces the whole set atomically: delete then recreate in one
// transaction, so readers never observe a partial week.
type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// --------- Requests ---------

type WindowRequest struct {
	Weekday     int    `json:"weekday" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable *bool  `json:"is_available"`

	EffectiveFrom  string `json:"effective_from"`
	EffectiveUntil string `json:"effective_until"`
}

type PutAvailabilityRequest struct {
	Windows []WindowRequest `json:"windows" binding:"required"`
}

// --------- Handlers ---------

func (h *AvailabilityHandler) Get(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !h.staffExists(c, staffID) {
		return
	}

	var windows []models.AvailabilityWindow
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list availability")
		return
	}

	httpresp.List(c, windows)
}

func (h *AvailabilityHandler) Put(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !h.staffExists(c, staffID) {
		return
	}

	var req PutAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	windows := make([]models.AvailabilityWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		win, err := h.buildWindow(staffID, w)
		if err != nil {
			httperr.BadRequest(c, "invalid_window", err.Error())
			return
		}
		windows = append(windows, win)
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).
			Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}
		if len(windows) == 0 {
			return nil
		}
		return tx.Create(&windows).Error
	})
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to save availability")
		return
	}

	c.JSON(http.StatusOK, httpresp.ListResponse[models.AvailabilityWindow]{
		Data:  windows,
		Total: len(windows),
	})
}

// --------- Internals ---------

func (h *AvailabilityHandler) staffExists(c *gin.Context, staffID uint) bool {
	var count int64
	if err := h.db.Model(&models.StaffMember{}).
		Where("id = ?", staffID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to load staff member")
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "staff_not_found", "staff member not found")
		return false
	}
	return true
}

func (h *AvailabilityHandler) buildWindow(staffID uint, w WindowRequest) (models.AvailabilityWindow, error) {
	var zero models.AvailabilityWindow

	if !validators.IsWeekday(w.Weekday) {
		return zero, errInvalidWeekday
	}
	if !validators.IsClockTime(w.StartTime) || !validators.IsClockTime(w.EndTime) {
		return zero, errInvalidClock
	}
	if w.StartTime >= w.EndTime {
		return zero, errWindowOrder
	}

	win := models.AvailabilityWindow{
		StaffID:     staffID,
		Weekday:     w.Weekday,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: true,
	}
	if w.IsAvailable != nil {
		win.IsAvailable = *w.IsAvailable
	}

	if w.EffectiveFrom != "" {
		t, err := time.Parse("2006-01-02", w.EffectiveFrom)
		if err != nil {
			return zero, errInvalidDate
		}
		win.EffectiveFrom = &t
	}
	if w.EffectiveUntil != "" {
		t, err := time.Parse("2006-01-02", w.EffectiveUntil)
		if err != nil {
			return zero, errInvalidDate
		}
		win.EffectiveUntil = &t
	}
	if win.EffectiveFrom != nil && win.EffectiveUntil != nil &&
		win.EffectiveUntil.Before(*win.EffectiveFrom) {
		return zero, errWindowOrder
	}

	return win, nil
}

var (
	errInvalidWeekday = validationError("weekday must be 1 (Monday) through 7 (Sunday)")
	errInvalidClock   = validationError("times must be HH:MM wall-clock strings")
	errWindowOrder    = validationError("window start must come before its end")
	errInvalidDate    = validationError("effective dates must be YYYY-MM-DD")
)

type validationError string

func (e validationError) Error() string { return string(e) }
