package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Expirer: dipenuhi *service.Sweeper.
type Expirer interface {
	ExpirePast(ctx context.Context) (int64, error)
}

// StartExpiryScheduler menjalankan sweep sekali di awal lalu tiap interval sampai ctx selesai.
// interval <= 0 → tidak dijalankan. Channel done ditutup saat goroutine berhenti.
func StartExpiryScheduler(ctx context.Context, s Expirer, interval time.Duration, log *logrus.Logger) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		log.Info("[SWEEP] schedule sweep ticker disabled")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			runOnce(ctx, s, interval, log)

			select {
			case <-ctx.Done():
				log.Info("[SWEEP] schedule sweep ticker stopped")
				return
			case <-ticker.C:
			}
		}
	}()
	return done
}

func runOnce(ctx context.Context, s Expirer, interval time.Duration, log *logrus.Logger) {
	// satu putaran tidak boleh melebihi interval
	rctx, cancel := context.WithTimeout(ctx, interval)
	defer cancel()

	n, err := s.ExpirePast(rctx)
	if err != nil {
		log.WithError(err).Error("[SWEEP] gagal menonaktifkan jadwal lewat")
		return
	}
	if n > 0 {
		log.WithField("expired", n).Info("[SWEEP] jadwal lewat dinonaktifkan")
	}
}
