package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	attendancemodel "jbh_backend/internals/features/liveclass/attendance/model"
	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
	"jbh_backend/internals/features/liveclass/webhooks/model"
	syllabusmodel "jbh_backend/internals/features/lms/syllabus/model"
	"jbh_backend/internals/helpers/dbtest"
	"jbh_backend/internals/helpers/videosdk"
)

type fakeRooms struct {
	recordings []string
}

func (f *fakeRooms) CreateRoom(ctx context.Context) (string, error) { return "room-x", nil }

func (f *fakeRooms) GenerateAccessToken(role videosdk.Role) (string, error) {
	return "tok-" + string(role), nil
}

func (f *fakeRooms) StartParticipantRecording(ctx context.Context, roomID, participantID string) error {
	f.recordings = append(f.recordings, roomID+"/"+participantID)
	return nil
}

func seedLiveSession(t *testing.T, db *gorm.DB, roomID string) sessionmodel.LiveSessionModel {
	t.Helper()

	module := syllabusmodel.SyllabusModuleModel{CourseID: 1, Title: "Live Classes - September 2025", ModuleOrder: 1}
	require.NoError(t, db.Create(&module).Error)
	lesson := syllabusmodel.LessonModel{ModuleID: module.ModuleID, Title: "Vectors (3 September)", ContentType: syllabusmodel.ContentLive, LessonOrder: 1}
	require.NoError(t, db.Create(&lesson).Error)

	session := sessionmodel.LiveSessionModel{
		RoomID:       roomID,
		InstructorID: 10,
		LessonID:     lesson.LessonID,
		StartTime:    time.Now().Add(-time.Hour),
		Status:       sessionmodel.SessionLive,
	}
	require.NoError(t, db.Create(&session).Error)
	return session
}

func reloadSession(t *testing.T, db *gorm.DB, id int) sessionmodel.LiveSessionModel {
	t.Helper()
	var s sessionmodel.LiveSessionModel
	require.NoError(t, db.First(&s, "live_lecture_id = ?", id).Error)
	return s
}

func TestHandleUnknownRoomOnlyAudits(t *testing.T) {
	db := dbtest.Open(t)
	r := NewReconciler(db, &fakeRooms{}, PlaybackConfig{})
	ctx := context.Background()

	session := seedLiveSession(t, db, "room-a")

	require.NoError(t, r.Handle(ctx, "session-ended", WebhookData{RoomID: "room-nobody"}, []byte(`{}`)))
	require.NoError(t, r.Handle(ctx, "session-ended", WebhookData{}, []byte(`{}`)))

	got := reloadSession(t, db, session.LiveLectureID)
	assert.Equal(t, sessionmodel.SessionLive, got.Status)

	// Both deliveries still land in the audit table.
	var audits int64
	db.Model(&model.WebhookEventModel{}).Count(&audits)
	assert.EqualValues(t, 2, audits)
}

func TestHandleParticipantJoinedStartsInstructorRecording(t *testing.T) {
	db := dbtest.Open(t)
	rooms := &fakeRooms{}
	r := NewReconciler(db, rooms, PlaybackConfig{})
	ctx := context.Background()

	seedLiveSession(t, db, "room-a")

	require.NoError(t, r.Handle(ctx, "participant-joined",
		WebhookData{RoomID: "room-a", ParticipantID: "55"}, []byte(`{}`)))
	assert.Empty(t, rooms.recordings)

	require.NoError(t, r.Handle(ctx, "participant-joined",
		WebhookData{RoomID: "room-a", ParticipantID: "instructor"}, []byte(`{}`)))
	assert.Equal(t, []string{"room-a/instructor"}, rooms.recordings)
}

func TestHandleParticipantLeftRecordsNumericIDsOnly(t *testing.T) {
	db := dbtest.Open(t)
	r := NewReconciler(db, &fakeRooms{}, PlaybackConfig{})
	ctx := context.Background()

	session := seedLiveSession(t, db, "room-a")

	require.NoError(t, r.Handle(ctx, "participant-left",
		WebhookData{RoomID: "room-a", ParticipantID: "instructor", Duration: 500}, []byte(`{}`)))
	require.NoError(t, r.Handle(ctx, "participant-left",
		WebhookData{RoomID: "room-a", ParticipantID: "55", Duration: 120.4}, []byte(`{}`)))

	var recs []attendancemodel.AttendanceRecordModel
	require.NoError(t, db.Where("live_lecture_id = ?", session.LiveLectureID).Find(&recs).Error)
	require.Len(t, recs, 1)
	assert.Equal(t, 55, recs[0].UserID)
	assert.Equal(t, 120, recs[0].DurationSeconds)
}

func TestHandleRecordingStoppedFirstWriteWinsOnLesson(t *testing.T) {
	db := dbtest.Open(t)
	r := NewReconciler(db, &fakeRooms{}, PlaybackConfig{})
	ctx := context.Background()

	session := seedLiveSession(t, db, "room-a")

	require.NoError(t, r.Handle(ctx, "recording-stopped",
		WebhookData{RoomID: "room-a", FilePath: "rec/first.mp4", FileURL: "https://files.example/first.mp4", Duration: 3723},
		[]byte(`{}`)))

	got := reloadSession(t, db, session.LiveLectureID)
	assert.Equal(t, sessionmodel.SessionCompleted, got.Status)
	require.NotNil(t, got.MeetingURL)
	assert.Equal(t, "https://files.example/first.mp4", *got.MeetingURL)
	require.NotNil(t, got.EndTime)
	firstEnd := *got.EndTime

	var lesson syllabusmodel.LessonModel
	require.NoError(t, db.First(&lesson, "lesson_id = ?", session.LessonID).Error)
	assert.Equal(t, syllabusmodel.ContentVideo, lesson.ContentType)
	assert.Equal(t, "https://files.example/first.mp4", lesson.ContentURL)
	require.NotNil(t, lesson.Duration)
	assert.Equal(t, 62, *lesson.Duration)

	// A second recording (reconnect fragment) refreshes the session link but
	// never overwrites the lesson's canonical video.
	require.NoError(t, r.Handle(ctx, "recording-stopped",
		WebhookData{RoomID: "room-a", FilePath: "rec/second.mp4", FileURL: "https://files.example/second.mp4", Duration: 60},
		[]byte(`{}`)))

	got = reloadSession(t, db, session.LiveLectureID)
	require.NotNil(t, got.MeetingURL)
	assert.Equal(t, "https://files.example/second.mp4", *got.MeetingURL)
	assert.True(t, got.EndTime.Equal(firstEnd), "completed end_time must not move")

	require.NoError(t, db.First(&lesson, "lesson_id = ?", session.LessonID).Error)
	assert.Equal(t, "https://files.example/first.mp4", lesson.ContentURL)
	require.NotNil(t, lesson.Duration)
	assert.Equal(t, 62, *lesson.Duration)
}

func TestHandleRecordingStoppedWithoutFileIsNoop(t *testing.T) {
	db := dbtest.Open(t)
	r := NewReconciler(db, &fakeRooms{}, PlaybackConfig{})
	ctx := context.Background()

	session := seedLiveSession(t, db, "room-a")

	require.NoError(t, r.Handle(ctx, "recording-stopped",
		WebhookData{RoomID: "room-a"}, []byte(`{}`)))

	got := reloadSession(t, db, session.LiveLectureID)
	assert.Equal(t, sessionmodel.SessionLive, got.Status)
	assert.Nil(t, got.MeetingURL)
}

func TestHandleSessionEndedCompletesAndEnqueuesOnce(t *testing.T) {
	db := dbtest.Open(t)
	r := NewReconciler(db, &fakeRooms{}, PlaybackConfig{})
	ctx := context.Background()

	session := seedLiveSession(t, db, "room-a")

	require.NoError(t, r.Handle(ctx, "session-ended", WebhookData{RoomID: "room-a"}, []byte(`{}`)))
	// Providers redeliver; the unique job index swallows the duplicate.
	require.NoError(t, r.Handle(ctx, "session-ended", WebhookData{RoomID: "room-a"}, []byte(`{}`)))

	got := reloadSession(t, db, session.LiveLectureID)
	assert.Equal(t, sessionmodel.SessionCompleted, got.Status)
	require.NotNil(t, got.EndTime)

	var jobs []model.FinalizeJobModel
	require.NoError(t, db.Find(&jobs).Error)
	require.Len(t, jobs, 1)
	assert.Equal(t, session.LiveLectureID, jobs[0].LiveLectureID)
	assert.Nil(t, jobs[0].CompletedAt)
}

func TestHandleRecordingFailedForcesCompletion(t *testing.T) {
	db := dbtest.Open(t)
	r := NewReconciler(db, &fakeRooms{}, PlaybackConfig{})
	ctx := context.Background()

	session := seedLiveSession(t, db, "room-a")

	require.NoError(t, r.Handle(ctx, "recording-failed", WebhookData{RoomID: "room-a"}, []byte(`{}`)))

	got := reloadSession(t, db, session.LiveLectureID)
	assert.Equal(t, sessionmodel.SessionCompleted, got.Status)
	require.NotNil(t, got.EndTime)
}

func TestPlaybackURLPrecedence(t *testing.T) {
	withCDN := NewReconciler(nil, &fakeRooms{}, PlaybackConfig{
		CDNBaseURL: "https://cdn.example.com/", BucketName: "classes", BucketRegion: "eu-central-003",
	})
	assert.Equal(t, "https://cdn.example.com/rec/a.mp4", withCDN.PlaybackURL("rec/a.mp4", "https://fallback/a.mp4"))

	withBucket := NewReconciler(nil, &fakeRooms{}, PlaybackConfig{
		BucketName: "classes", BucketRegion: "eu-central-003",
	})
	assert.Equal(t, "https://classes.s3.eu-central-003.backblazeb2.com/rec/a.mp4",
		withBucket.PlaybackURL("rec/a.mp4", "https://fallback/a.mp4"))

	bare := NewReconciler(nil, &fakeRooms{}, PlaybackConfig{})
	assert.Equal(t, "https://fallback/a.mp4", bare.PlaybackURL("rec/a.mp4", "https://fallback/a.mp4"))
}
