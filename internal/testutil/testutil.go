// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/db"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

const JWTSecret = "test-secret"

// NewDB opens a private in-memory sqlite database with the full schema.
// A single connection keeps every statement on the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := db.Open(sqlite.Open(dsn), logger.Discard())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb, timezone.DefaultTimezone))
	return gdb
}

// SeedStudio creates a studio open 08:00-18:00 every day with a lunch break.
func SeedStudio(t testing.TB, gdb *gorm.DB) *models.Studio {
	t.Helper()

	studio := &models.Studio{
		Name:              "Studio Hạnh Phúc",
		Slug:              "hanh-phuc-" + uuid.NewString()[:8],
		Timezone:          timezone.DefaultTimezone,
		MinAdvanceMinutes: 120,
	}
	require.NoError(t, gdb.Create(studio).Error)

	for wd := 0; wd < 7; wd++ {
		require.NoError(t, gdb.Create(&models.WorkingHours{
			StudioID:   studio.ID,
			Weekday:    wd,
			StartTime:  "08:00",
			EndTime:    "18:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			Active:     true,
		}).Error)
	}
	return studio
}

func SeedUser(t testing.TB, gdb *gorm.DB, studioID uint) *models.User {
	t.Helper()

	user := &models.User{
		StudioID:     studioID,
		Name:         "Ngọc Anh",
		Email:        uuid.NewString()[:8] + "@studio.test",
		PasswordHash: "x",
		Role:         "owner",
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func SeedCustomer(t testing.TB, gdb *gorm.DB, studioID uint, name, phone string) *models.Customer {
	t.Helper()

	c := &models.Customer{StudioID: studioID, Name: name, Phone: phone, Status: "interested"}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func SeedCatalogItem(t testing.TB, gdb *gorm.DB, studioID uint, kind, name string, price int64) *models.CatalogItem {
	t.Helper()

	item := &models.CatalogItem{StudioID: studioID, Kind: kind, Name: name, Price: price, Active: true}
	require.NoError(t, gdb.Create(item).Error)
	return item
}

func SeedStaff(t testing.TB, gdb *gorm.DB, studioID uint, name string) *models.StaffMember {
	t.Helper()

	s := &models.StaffMember{
		StudioID:            studioID,
		Name:                name,
		Position:            "photographer",
		BaseSalary:          10_000_000,
		HourlyRate:          50_000,
		WorkingDaysPerMonth: 26,
		Status:              "active",
	}
	require.NoError(t, gdb.Create(s).Error)
	return s
}

// NextWeekday returns the next date after now falling on wd at hh:mm in loc.
func NextWeekday(now time.Time, wd time.Weekday, hh, mm int, loc *time.Location) time.Time {
	d := now.In(loc).AddDate(0, 0, 1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, loc)
}
