package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/middleware"
)

// parseIDParam reads a positive integer path parameter. The second return is
// false when the value is missing or malformed (a response was written).
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "path parameter '"+name+"' must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// actorID returns the authenticated user id, nil when the route is reachable
// without auth.
func actorID(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

func tokenBranchID(c *gin.Context) uint {
	v, ok := c.Get(middleware.ContextBranchID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

// writeBusinessError maps a business rejection to its HTTP status and writes
// it. Returns false when err is not a business error so the caller can fall
// through to a 500.
func writeBusinessError(c *gin.Context, err error) bool {
	code, ok := httperr.IsAnyBusiness(err)
	if !ok {
		return false
	}

	switch code {
	case "staff_not_found", "branch_not_found", "shift_not_found", "conflict_not_found":
		httperr.NotFound(c, code, err.Error())
	case "invalid_state", "conflict_already_resolved", "duplicate_shift_reference":
		httperr.Write(c, 409, code, err.Error())
	default:
		httperr.BadRequest(c, code, err.Error())
	}
	return true
}
