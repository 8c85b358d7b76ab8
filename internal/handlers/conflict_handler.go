package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/httpresp"
	usecase "github.com/platefleet/scheduling/internal/usecase/schedule"
)

type ConflictHandler struct {
	inspect *usecase.InspectConflicts
	resolve *usecase.ResolveConflict
}

func NewConflictHandler(
	inspect *usecase.InspectConflicts,
	resolve *usecase.ResolveConflict,
) *ConflictHandler {
	return &ConflictHandler{inspect: inspect, resolve: resolve}
}

// --------- Requests ---------

type ResolveConflictRequest struct {
	Notes string `json:"notes"`
}

// --------- Handlers ---------

// ListForShift returns a shift's conflicts; ?unresolved=true narrows to the
// ones still open.
func (h *ConflictHandler) ListForShift(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	unresolvedOnly := c.Query("unresolved") == "true"

	conflicts, err := h.inspect.List(c.Request.Context(), shiftID, unresolvedOnly)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to list conflicts")
		return
	}

	httpresp.List(c, conflicts)
}

// Resolve marks a conflict as handled by the authenticated manager. A
// resolved conflict stays on record and is never reopened.
func (h *ConflictHandler) Resolve(c *gin.Context) {
	conflictID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	actor := actorID(c)
	if actor == nil {
		httperr.Unauthorized(c, "unauthorized", "authentication required")
		return
	}

	conflict, err := h.resolve.Execute(c.Request.Context(), usecase.ResolveConflictInput{
		ConflictID: conflictID,
		ActorID:    *actor,
		Notes:      req.Notes,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "internal_error", "failed to resolve conflict")
		return
	}

	httpresp.OK(c, conflict)
}
