package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceservice "jbh_backend/internals/features/liveclass/attendance/service"
	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
	"jbh_backend/internals/features/liveclass/webhooks/model"
	syllabusmodel "jbh_backend/internals/features/lms/syllabus/model"
	"jbh_backend/internals/helpers/videosdk"
)

// finalizeDelay absorbs straggling participant-left events that can arrive
// after session-ended. Advisory only: finalize is a pure recompute and is
// also re-triggerable from the explicit end path.
const finalizeDelay = 10 * time.Second

// WebhookData is the common payload shape of provider lifecycle events.
type WebhookData struct {
	RoomID        string  `json:"roomId"`
	ParticipantID string  `json:"participantId"`
	Duration      float64 `json:"duration"`
	FilePath      string  `json:"filePath"`
	FileURL       string  `json:"fileUrl"`
}

type PlaybackConfig struct {
	CDNBaseURL   string
	BucketName   string
	BucketRegion string
}

// Reconciler maps asynchronous, possibly duplicated and out-of-order
// provider events onto the session lifecycle and the attendance ledger.
// Every handler tolerates repeat delivery; a missing or unknown roomId is a
// no-op. Note the provider sends no delivery id, so a duplicated
// participant-left double-counts its duration (known limitation, the
// webhook_events audit table exists to diagnose it).
type Reconciler struct {
	db       *gorm.DB
	rooms    videosdk.RoomProvider
	ledger   *attendanceservice.Ledger
	playback PlaybackConfig
}

func NewReconciler(db *gorm.DB, rooms videosdk.RoomProvider, playback PlaybackConfig) *Reconciler {
	return &Reconciler{
		db:       db,
		rooms:    rooms,
		ledger:   attendanceservice.NewLedger(db),
		playback: playback,
	}
}

// Handle processes one provider delivery. Errors are for the caller's log
// only; the HTTP layer acknowledges the provider regardless.
func (r *Reconciler) Handle(ctx context.Context, webhookType string, data WebhookData, raw []byte) error {
	r.audit(ctx, webhookType, data.RoomID, raw)

	if strings.TrimSpace(data.RoomID) == "" {
		return nil
	}

	var session sessionmodel.LiveSessionModel
	err := r.db.WithContext(ctx).Preload("Lesson").
		Where("room_id = ?", data.RoomID).
		Order("live_lecture_id ASC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	switch webhookType {
	case "participant-joined":
		return r.handleParticipantJoined(ctx, &session, data)
	case "participant-left":
		return r.handleParticipantLeft(ctx, &session, data)
	case "recording-stopped", "participant-recording-stopped":
		return r.handleRecordingStopped(ctx, &session, data)
	case "session-ended":
		return r.handleSessionEnded(ctx, &session)
	case "recording-failed", "participant-recording-failed":
		return r.handleRecordingFailed(ctx, &session)
	default:
		return nil
	}
}

func (r *Reconciler) audit(ctx context.Context, webhookType, roomID string, raw []byte) {
	event := model.WebhookEventModel{
		EventID:     uuid.NewString(),
		WebhookType: webhookType,
		RoomID:      roomID,
		Payload:     datatypes.JSON(raw),
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("[WEBHOOK] failed to persist event audit row: %v", err)
	}
}

// The instructor joining is the cue to start their recording. Provider
// errors here are non-fatal: the class goes on without a recording.
func (r *Reconciler) handleParticipantJoined(ctx context.Context, session *sessionmodel.LiveSessionModel, data WebhookData) error {
	if data.ParticipantID != "instructor" {
		return nil
	}
	log.Printf("[WEBHOOK] instructor joined, starting recording for room %s", session.RoomID)
	if err := r.rooms.StartParticipantRecording(ctx, session.RoomID, data.ParticipantID); err != nil {
		log.Printf("[WEBHOOK] failed to start participant recording: %v", err)
	}
	return nil
}

// Numeric participant ids are students; anything else (bots, the
// "instructor" marker) is ignored for attendance.
func (r *Reconciler) handleParticipantLeft(ctx context.Context, session *sessionmodel.LiveSessionModel, data WebhookData) error {
	userID, err := strconv.Atoi(strings.TrimSpace(data.ParticipantID))
	if err != nil || userID <= 0 {
		return nil
	}
	seconds := int(math.Round(data.Duration))
	return r.ledger.RecordLeave(ctx, session.LiveLectureID, userID, seconds)
}

func (r *Reconciler) handleRecordingStopped(ctx context.Context, session *sessionmodel.LiveSessionModel, data WebhookData) error {
	if strings.TrimSpace(data.FilePath) == "" {
		return nil
	}
	playbackURL := r.PlaybackURL(data.FilePath, data.FileURL)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// First completed transition owns end_time.
		if err := tx.Model(&sessionmodel.LiveSessionModel{}).
			Where("live_lecture_id = ? AND status = ?", session.LiveLectureID, sessionmodel.SessionLive).
			Updates(map[string]interface{}{
				"status":   sessionmodel.SessionCompleted,
				"end_time": time.Now(),
			}).Error; err != nil {
			return err
		}
		// The session's own playback link always updates, even on re-delivery.
		if err := tx.Model(&sessionmodel.LiveSessionModel{}).
			Where("live_lecture_id = ?", session.LiveLectureID).
			Update("meeting_url", playbackURL).Error; err != nil {
			return err
		}

		// Only the first recording fills the lesson's primary URL, so
		// reconnect fragments do not overwrite the canonical video.
		if session.Lesson != nil && strings.TrimSpace(session.Lesson.ContentURL) == "" {
			minutes := int(math.Round(data.Duration / 60))
			if err := tx.Model(&syllabusmodel.LessonModel{}).
				Where("lesson_id = ? AND (content_url IS NULL OR content_url = '')", session.LessonID).
				Updates(map[string]interface{}{
					"content_type": syllabusmodel.ContentVideo,
					"content_url":  playbackURL,
					"duration":     minutes,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Reconciler) handleSessionEnded(ctx context.Context, session *sessionmodel.LiveSessionModel) error {
	if err := r.db.WithContext(ctx).Model(&sessionmodel.LiveSessionModel{}).
		Where("live_lecture_id = ? AND status = ?", session.LiveLectureID, sessionmodel.SessionLive).
		Updates(map[string]interface{}{
			"status":   sessionmodel.SessionCompleted,
			"end_time": time.Now(),
		}).Error; err != nil {
		return err
	}
	return r.EnqueueFinalize(ctx, session.LiveLectureID)
}

// A failed recording must not leave the class looking live forever.
func (r *Reconciler) handleRecordingFailed(ctx context.Context, session *sessionmodel.LiveSessionModel) error {
	return r.db.WithContext(ctx).Model(&sessionmodel.LiveSessionModel{}).
		Where("live_lecture_id = ? AND status = ?", session.LiveLectureID, sessionmodel.SessionLive).
		Updates(map[string]interface{}{
			"status":   sessionmodel.SessionCompleted,
			"end_time": time.Now(),
		}).Error
}

// EnqueueFinalize schedules a durable deferred finalize. At most one job per
// session exists; re-delivered session-ended webhooks hit the unique index
// and do nothing.
func (r *Reconciler) EnqueueFinalize(ctx context.Context, liveLectureID int) error {
	job := model.FinalizeJobModel{
		LiveLectureID: liveLectureID,
		RunAt:         time.Now().Add(finalizeDelay),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&job).Error
}

// PlaybackURL builds the public recording URL: configured CDN first, then
// bucket-style hosting, then whatever URL the provider reported.
func (r *Reconciler) PlaybackURL(filePath, fallbackURL string) string {
	if r.playback.CDNBaseURL != "" {
		return strings.TrimRight(r.playback.CDNBaseURL, "/") + "/" + filePath
	}
	if r.playback.BucketName != "" && r.playback.BucketRegion != "" {
		return fmt.Sprintf("https://%s.s3.%s.backblazeb2.com/%s",
			r.playback.BucketName, r.playback.BucketRegion, filePath)
	}
	return fallbackURL
}
