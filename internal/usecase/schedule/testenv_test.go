package schedule

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/platefleet/scheduling/internal/audit"
	dbpkg "github.com/platefleet/scheduling/internal/db"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/infra/cache"
	infraRepo "github.com/platefleet/scheduling/internal/infra/repository"
	"github.com/platefleet/scheduling/internal/models"
)

// Shared wiring for the use-case tests: a throwaway in-memory database and
// the full use-case graph against it, exactly as routes.go assembles it.

var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	db   *gorm.DB
	repo *infraRepo.ScheduleGormRepository

	create  *CreateShift
	update  *UpdateShift
	delete  *DeleteShift
	cancel  *CancelShift
	clock   *ClockShift
	resolve *ResolveConflict
	inspect *InspectConflicts
	auto    *AutoSchedule
	stats   *ShiftStatistics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every session on the same :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo := infraRepo.NewScheduleGormRepository(db)
	rules := domain.DefaultRules()
	dispatcher := audit.NewDispatcher(audit.New(db))
	statsCache := cache.NewNoopStatisticsCache()

	createUC := NewCreateShift(repo, rules, dispatcher, statsCache)

	return &testEnv{
		db:      db,
		repo:    repo,
		create:  createUC,
		update:  NewUpdateShift(repo, rules, dispatcher, statsCache),
		delete:  NewDeleteShift(repo, dispatcher, statsCache),
		cancel:  NewCancelShift(repo, dispatcher, statsCache),
		clock:   NewClockShift(repo, dispatcher),
		resolve: NewResolveConflict(repo, dispatcher),
		inspect: NewInspectConflicts(repo),
		auto:    NewAutoSchedule(repo, rules, createUC, dispatcher),
		stats:   NewShiftStatistics(repo, statsCache),
	}
}

// --------- Seed helpers ---------

func seedBranch(t *testing.T, db *gorm.DB, slug string) models.Branch {
	t.Helper()
	branch := models.Branch{Name: slug, Slug: slug, Timezone: "UTC", Active: true}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}
	return branch
}

func seedStaff(t *testing.T, db *gorm.DB, branchID *uint, role string) models.StaffMember {
	t.Helper()
	staff := models.StaffMember{Name: "staff", Role: role, BranchID: branchID, Active: true}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("failed to seed staff: %v", err)
	}
	return staff
}

func seedWeekAvailability(t *testing.T, db *gorm.DB, staffID uint) {
	t.Helper()
	for wd := 1; wd <= 7; wd++ {
		window := models.AvailabilityWindow{
			StaffID:     staffID,
			Weekday:     wd,
			StartTime:   "06:00",
			EndTime:     "23:00",
			IsAvailable: true,
		}
		if err := db.Create(&window).Error; err != nil {
			t.Fatalf("failed to seed availability: %v", err)
		}
	}
}

func countConflicts(t *testing.T, db *gorm.DB, shiftID uint, resolved *bool) int {
	t.Helper()
	q := db.Model(&models.Conflict{}).Where("shift_id = ?", shiftID)
	if resolved != nil {
		q = q.Where("resolved = ?", *resolved)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("failed to count conflicts: %v", err)
	}
	return int(n)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
