package model

import "time"

// FinalizeJobModel is the durable replacement for the fire-and-forget delay
// between a session-ended webhook and attendance finalization: the row
// survives a restart and is picked up by the sweeper once run_at passes.
// Unique on live_lecture_id so re-delivered webhooks enqueue at most once.
type FinalizeJobModel struct {
	JobID         int        `gorm:"primaryKey;autoIncrement;column:job_id" json:"job_id"`
	LiveLectureID int        `gorm:"not null;uniqueIndex:uq_finalize_jobs_lecture;column:live_lecture_id" json:"live_lecture_id"`
	RunAt         time.Time  `gorm:"not null;index;column:run_at" json:"run_at"`
	CompletedAt   *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (FinalizeJobModel) TableName() string { return "attendance_finalize_jobs" }
