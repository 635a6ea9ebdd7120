package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourku_backend/internals/features/schedules/repository"
	"tourku_backend/internals/helpers/dbtime"
)

// Sweeper menonaktifkan jadwal aktif yang tanggal keberangkatannya sudah lewat.
type Sweeper struct {
	DB       *gorm.DB
	Log      *logrus.Logger
	Location *time.Location
	Now      func() time.Time
}

func NewSweeper(db *gorm.DB, loc *time.Location, log *logrus.Logger) *Sweeper {
	if loc == nil {
		loc = time.UTC
	}
	return &Sweeper{DB: db, Log: log, Location: loc, Now: time.Now}
}

// Today: tanggal kalender di zona bisnis (YYYY-MM-DD).
func (s *Sweeper) Today() string {
	return dbtime.Today(s.Now(), s.Location)
}

// ExpirePast mengembalikan jumlah jadwal yang diubah ke tidak-aktif.
func (s *Sweeper) ExpirePast(ctx context.Context) (int64, error) {
	today := s.Today()
	n, err := repository.DeactivatePastSchedules(ctx, s.DB, today)
	if err != nil {
		s.Log.WithError(err).WithField("today", today).Error("expire past schedules failed")
		return 0, err
	}
	s.Log.WithFields(logrus.Fields{"today": today, "expired": n}).Info("schedule sweep done")
	return n, nil
}
