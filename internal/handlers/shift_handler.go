package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/dto"
	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/httpresp"
	"github.com/platefleet/scheduling/internal/models"
	usecase "github.com/platefleet/scheduling/internal/usecase/schedule"
)

type ShiftHandler struct {
	db *gorm.DB

	createShift *usecase.CreateShift
	updateShift *usecase.UpdateShift
	deleteShift *usecase.DeleteShift
	cancelShift *usecase.CancelShift
	clockShift  *usecase.ClockShift
}

func NewShiftHandler(
	db *gorm.DB,
	createShift *usecase.CreateShift,
	updateShift *usecase.UpdateShift,
	deleteShift *usecase.DeleteShift,
	cancelShift *usecase.CancelShift,
	clockShift *usecase.ClockShift,
) *ShiftHandler {
	return &ShiftHandler{
		db:          db,
		createShift: createShift,
		updateShift: updateShift,
		deleteShift: deleteShift,
		cancelShift: cancelShift,
		clockShift:  clockShift,
	}
}

// --------- Requests ---------

type BreakRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type CreateShiftRequest struct {
	StaffID  uint   `json:"staff_id" binding:"required"`
	BranchID uint   `json:"branch_id" binding:"required"`
	Date     string `json:"date" binding:"required"`

	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	RequiredRole string         `json:"required_role"`
	Breaks       []BreakRequest `json:"breaks"`
}

type UpdateShiftRequest struct {
	StaffID   *uint   `json:"staff_id"`
	BranchID  *uint   `json:"branch_id"`
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`

	RequiredRole *string         `json:"required_role"`
	Breaks       *[]BreakRequest `json:"breaks"`
}

func toBreakIntervals(reqs []BreakRequest) ([]domain.BreakInterval, error) {
	breaks := make([]domain.BreakInterval, 0, len(reqs))
	for _, b := range reqs {
		if _, err := domain.ParseClock(b.Start); err != nil {
			return nil, err
		}
		if _, err := domain.ParseClock(b.End); err != nil {
			return nil, err
		}
		breaks = append(breaks, domain.BreakInterval{Start: b.Start, End: b.End})
	}
	return breaks, nil
}

// --------- Handlers ---------

// Create schedules a shift. Detected conflicts come back in the 201 payload:
// they flag the shift for review, they do not block it.
func (h *ShiftHandler) Create(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	breaks, err := toBreakIntervals(req.Breaks)
	if err != nil {
		httperr.BadRequest(c, "invalid_time_range", "break times must be HH:MM wall-clock strings")
		return
	}

	shift, err := h.createShift.Execute(c.Request.Context(), usecase.CreateShiftInput{
		StaffID:      req.StaffID,
		BranchID:     req.BranchID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RequiredRole: req.RequiredRole,
		Breaks:       breaks,
		ActorID:      actorID(c),
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to create shift")
		return
	}

	c.JSON(http.StatusCreated, shift)
}

func (h *ShiftHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := usecase.UpdateShiftInput{
		ShiftID:      id,
		StaffID:      req.StaffID,
		BranchID:     req.BranchID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RequiredRole: req.RequiredRole,
		ActorID:      actorID(c),
	}
	if req.Breaks != nil {
		breaks, err := toBreakIntervals(*req.Breaks)
		if err != nil {
			httperr.BadRequest(c, "invalid_time_range", "break times must be HH:MM wall-clock strings")
			return
		}
		in.Breaks = &breaks
	}

	shift, err := h.updateShift.Execute(c.Request.Context(), in)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to update shift")
		return
	}

	httpresp.OK(c, shift)
}

func (h *ShiftHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteShift.Execute(c.Request.Context(), id, actorID(c)); err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to delete shift")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ShiftHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shift, err := h.cancelShift.Execute(c.Request.Context(), id, actorID(c))
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to cancel shift")
		return
	}

	httpresp.OK(c, shift)
}

func (h *ShiftHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var shift models.Shift
	if err := h.db.
		Preload("Staff").
		Preload("Conflicts").
		First(&shift, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "shift_not_found", "shift not found")
			return
		}
		httperr.Internal(c, "internal_error", "failed to load shift")
		return
	}

	httpresp.OK(c, shift)
}

// List returns the schedule board for a branch over a date range, optionally
// narrowed to one staff member. Defaults to the token's branch and today.
func (h *ShiftHandler) List(c *gin.Context) {
	branchID := tokenBranchID(c)
	if raw := c.Query("branch_id"); raw != "" {
		id, ok := parseQueryID(c, "branch_id", raw)
		if !ok {
			return
		}
		branchID = id
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	q := h.db.
		Preload("Staff").
		Preload("Conflicts").
		Where("branch_id = ? AND date >= ? AND date <= ?", branchID, from, to).
		Order("date ASC, start_time ASC, id ASC")

	if raw := c.Query("staff_id"); raw != "" {
		id, ok := parseQueryID(c, "staff_id", raw)
		if !ok {
			return
		}
		q = q.Where("staff_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var shifts []models.Shift
	if err := q.Find(&shifts).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list shifts")
		return
	}

	items := make([]dto.ShiftListItem, 0, len(shifts))
	for _, s := range shifts {
		items = append(items, dto.NewShiftListItem(s))
	}

	httpresp.List(c, items)
}

func (h *ShiftHandler) ClockIn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shift, err := h.clockShift.In(c.Request.Context(), id, actorID(c))
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to clock in")
		return
	}

	httpresp.OK(c, shift)
}

func (h *ShiftHandler) ClockOut(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shift, err := h.clockShift.Out(c.Request.Context(), id, actorID(c))
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to clock out")
		return
	}

	httpresp.OK(c, shift)
}

// --------- Query parsing ---------

func parseQueryID(c *gin.Context, name, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "query parameter '"+name+"' must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	today := domain.DateOnly(time.Now().UTC())
	from, to := today, today

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "'from' must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = domain.DateOnly(t)
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "'to' must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = domain.DateOnly(t)
	}
	if to.Before(from) {
		httperr.BadRequest(c, "invalid_date", "'to' must not precede 'from'")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
