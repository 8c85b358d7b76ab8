package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/httpresp"
	"github.com/platefleet/scheduling/internal/models"
)

// StaffHandler manages the staff directory. Plain CRUD against the store;
// scheduling rules never run here.
type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	BranchID *uint  `json:"branch_id"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	BranchID *uint   `json:"branch_id"`
	Active   *bool   `json:"active"`
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	q := h.db.Model(&models.StaffMember{}).Order("id ASC")

	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			httperr.BadRequest(c, "invalid_role", "unknown staff role: "+role)
			return
		}
		q = q.Where("role = ?", role)
	}
	if branch := c.Query("branch_id"); branch != "" {
		q = q.Where("branch_id = ?", branch)
	}
	if c.Query("active") != "false" {
		q = q.Where("active = ?", true)
	}

	var staff []models.StaffMember
	if err := q.Find(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list staff")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var staff models.StaffMember
	if err := h.db.Preload("Branch").First(&staff, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "staff_not_found", "staff member not found")
			return
		}
		httperr.Internal(c, "internal_error", "failed to load staff member")
		return
	}

	httpresp.OK(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !models.ValidRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "unknown staff role: "+req.Role)
		return
	}
	if req.BranchID != nil {
		var count int64
		h.db.Model(&models.Branch{}).Where("id = ?", *req.BranchID).Count(&count)
		if count == 0 {
			httperr.NotFound(c, "branch_not_found", "branch not found")
			return
		}
	}

	staff := models.StaffMember{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		BranchID: req.BranchID,
		Active:   true,
	}

	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create staff member")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var staff models.StaffMember
	if err := h.db.First(&staff, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "staff_not_found", "staff member not found")
			return
		}
		httperr.Internal(c, "internal_error", "failed to load staff member")
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			httperr.BadRequest(c, "invalid_role", "unknown staff role: "+*req.Role)
			return
		}
		staff.Role = *req.Role
	}
	if req.BranchID != nil {
		var count int64
		h.db.Model(&models.Branch{}).Where("id = ?", *req.BranchID).Count(&count)
		if count == 0 {
			httperr.NotFound(c, "branch_not_found", "branch not found")
			return
		}
		staff.BranchID = req.BranchID
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update staff member")
		return
	}

	httpresp.OK(c, staff)
}

// Deactivate soft-disables a staff member. Existing shifts are untouched;
// new scheduling for the member is rejected downstream.
func (h *StaffHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := h.db.Model(&models.StaffMember{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "internal_error", "failed to deactivate staff member")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "staff_not_found", "staff member not found")
		return
	}

	c.Status(http.StatusNoContent)
}
