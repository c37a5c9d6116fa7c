package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	attendanceservice "jbh_backend/internals/features/liveclass/attendance/service"
	"jbh_backend/internals/features/liveclass/webhooks/model"
)

// StartFinalizeSweeper polls for due attendance finalize jobs. Jobs are
// durable rows, so a deferred finalize survives a process restart instead of
// vanishing with an in-memory timer.
func StartFinalizeSweeper(db *gorm.DB, interval time.Duration) {
	go func() {
		ledger := attendanceservice.NewLedger(db)
		for {
			if n, err := SweepOnce(context.Background(), db, ledger); err != nil {
				log.Printf("[FINALIZE] sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("[FINALIZE] finalized attendance for %d session(s)", n)
			}
			time.Sleep(interval)
		}
	}()
}

// SweepOnce runs every due, not-yet-completed job and stamps it done.
// Finalize itself is idempotent, so a crash between run and stamp only
// causes a harmless re-run.
func SweepOnce(ctx context.Context, db *gorm.DB, ledger *attendanceservice.Ledger) (int, error) {
	var jobs []model.FinalizeJobModel
	err := db.WithContext(ctx).
		Where("completed_at IS NULL AND run_at <= ?", time.Now()).
		Limit(50).
		Find(&jobs).Error
	if err != nil {
		return 0, err
	}

	done := 0
	for _, job := range jobs {
		if err := ledger.FinalizeSession(ctx, job.LiveLectureID); err != nil {
			log.Printf("[FINALIZE] session %d failed: %v", job.LiveLectureID, err)
			continue
		}
		if err := db.WithContext(ctx).Model(&model.FinalizeJobModel{}).
			Where("job_id = ?", job.JobID).
			Update("completed_at", time.Now()).Error; err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}
