package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourku_backend/internals/features/schedules/model"
	"tourku_backend/internals/helpers/testdb"
)

var wib = time.FixedZone("WIB", 7*60*60)

func seedSchedule(t *testing.T, db *gorm.DB, code string, date *time.Time, status model.ScheduleStatus) uuid.UUID {
	t.Helper()
	s := &model.Schedule{
		ScheduleCode:          code,
		SchedulePackageID:     uuid.New(),
		ScheduleDepartureDate: *date,
		ScheduleDepartureTime: model.DefaultDepartureTime,
		ScheduleStatus:        status,
	}
	require.NoError(t, db.Create(s).Error)
	return s.ScheduleID
}

func statusOf(t *testing.T, db *gorm.DB, id uuid.UUID) model.ScheduleStatus {
	t.Helper()
	var s model.Schedule
	require.NoError(t, db.First(&s, "schedule_id = ?", id).Error)
	return s.ScheduleStatus
}

func TestSweeper_ExpirePast(t *testing.T) {
	db := testdb.Open(t)
	log, _ := logtest.NewNullLogger()

	sw := NewSweeper(db, wib, log)
	// 18:00 UTC tanggal 16 = 01:00 WIB tanggal 17
	sw.Now = func() time.Time { return time.Date(2026, time.October, 16, 18, 0, 0, 0, time.UTC) }
	require.Equal(t, "2026-10-17", sw.Today())

	yesterday := seedSchedule(t, db, "S1", testdb.Date(2026, time.October, 16), model.ScheduleStatusActive)
	lastMonth := seedSchedule(t, db, "S2", testdb.Date(2026, time.September, 1), model.ScheduleStatusActive)
	today := seedSchedule(t, db, "S3", testdb.Date(2026, time.October, 17), model.ScheduleStatusActive)
	future := seedSchedule(t, db, "S4", testdb.Date(2026, time.December, 1), model.ScheduleStatusActive)
	done := seedSchedule(t, db, "S5", testdb.Date(2026, time.October, 1), model.ScheduleStatusDone)
	inactive := seedSchedule(t, db, "S6", testdb.Date(2026, time.October, 2), model.ScheduleStatusInactive)

	n, err := sw.ExpirePast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.Equal(t, model.ScheduleStatusInactive, statusOf(t, db, yesterday))
	assert.Equal(t, model.ScheduleStatusInactive, statusOf(t, db, lastMonth))
	assert.Equal(t, model.ScheduleStatusActive, statusOf(t, db, today))
	assert.Equal(t, model.ScheduleStatusActive, statusOf(t, db, future))
	assert.Equal(t, model.ScheduleStatusDone, statusOf(t, db, done))
	assert.Equal(t, model.ScheduleStatusInactive, statusOf(t, db, inactive))

	// sweep kedua tidak mengubah apa pun
	n, err = sw.ExpirePast(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweeper_TodayUsesBusinessTimezone(t *testing.T) {
	sw := NewSweeper(nil, nil, nil)
	sw.Now = func() time.Time { return time.Date(2026, time.October, 16, 18, 0, 0, 0, time.UTC) }
	assert.Equal(t, "2026-10-16", sw.Today())

	sw.Location = wib
	assert.Equal(t, "2026-10-17", sw.Today())
}
