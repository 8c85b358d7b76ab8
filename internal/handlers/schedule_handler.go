package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/httpresp"
	usecase "github.com/platefleet/scheduling/internal/usecase/schedule"
)

// ScheduleHandler exposes the branch-level scheduling operations: filling a
// day from role quotas and the reporting rollup.
type ScheduleHandler struct {
	autoSchedule *usecase.AutoSchedule
	statistics   *usecase.ShiftStatistics
}

func NewScheduleHandler(
	autoSchedule *usecase.AutoSchedule,
	statistics *usecase.ShiftStatistics,
) *ScheduleHandler {
	return &ScheduleHandler{
		autoSchedule: autoSchedule,
		statistics:   statistics,
	}
}

// --------- Requests ---------

type AutoScheduleRequest struct {
	BranchID     uint                  `json:"branch_id"`
	Date         string                `json:"date" binding:"required"`
	Requirements []usecase.Requirement `json:"requirements" binding:"required"`

	WindowStart string `json:"window_start"`
	WindowEnd   string `json:"window_end"`
}

// --------- Handlers ---------

func (h *ScheduleHandler) AutoSchedule(c *gin.Context) {
	var req AutoScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	branchID := req.BranchID
	if branchID == 0 {
		branchID = tokenBranchID(c)
	}

	result, err := h.autoSchedule.Execute(c.Request.Context(), usecase.AutoScheduleInput{
		BranchID:     branchID,
		Date:         req.Date,
		Requirements: req.Requirements,
		WindowStart:  req.WindowStart,
		WindowEnd:    req.WindowEnd,
		ActorID:      actorID(c),
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "auto-scheduling failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Statistics aggregates a branch's shifts over ?from/?to (defaults to today).
func (h *ScheduleHandler) Statistics(c *gin.Context) {
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

	stats, err := h.statistics.Execute(c.Request.Context(), branchID, from, to)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to compute statistics")
		return
	}

	httpresp.OK(c, stats)
}
