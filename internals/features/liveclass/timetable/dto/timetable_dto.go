package dto

import (
	"time"

	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
	"jbh_backend/internals/features/liveclass/timetable/model"
	"jbh_backend/internals/features/liveclass/timetable/service"
)

// SlotResponse is one timetable row, optionally annotated with the live
// session the matcher attributed to it.
type SlotResponse struct {
	ScheduleID     int        `json:"schedule_id"`
	CourseID       int        `json:"course_id"`
	CourseTitle    string     `json:"course_title,omitempty"`
	ThumbnailURL   *string    `json:"thumbnail_url,omitempty"`
	InstructorID   int        `json:"instructor_id"`
	InstructorName string     `json:"instructor_name,omitempty"`
	ScheduleType   string     `json:"schedule_type"`
	DayOfWeek      *string    `json:"day_of_week,omitempty"`
	SpecificDate   *time.Time `json:"specific_date,omitempty"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`

	IsLiveNow     bool    `json:"is_live_now"`
	LiveLectureID *int    `json:"live_lecture_id,omitempty"`
	RoomID        *string `json:"room_id,omitempty"`
}

func ToSlotResponse(slot model.ScheduleSlotModel, match service.MatchResult) SlotResponse {
	resp := SlotResponse{
		ScheduleID:   slot.ScheduleID,
		CourseID:     slot.CourseID,
		InstructorID: slot.InstructorID,
		ScheduleType: string(slot.ScheduleType),
		DayOfWeek:    slot.DayOfWeek,
		SpecificDate: slot.SpecificDate,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		IsLiveNow:    match.IsLive,
	}
	if slot.Course != nil {
		resp.CourseTitle = slot.Course.Title
		resp.ThumbnailURL = slot.Course.ThumbnailURL
	}
	if slot.Instructor != nil {
		resp.InstructorName = slot.Instructor.FullName
	}
	if match.IsLive && match.Session != nil {
		resp.LiveLectureID = &match.Session.LiveLectureID
		resp.RoomID = &match.Session.RoomID
	}
	return resp
}

// UpcomingLectureResponse is a live lecture scheduled later today.
type UpcomingLectureResponse struct {
	LiveLectureID int       `json:"live_lecture_id"`
	RoomID        string    `json:"room_id"`
	StartTime     time.Time `json:"start_time"`
	Status        string    `json:"status"`
	LessonTitle   string    `json:"lesson_title,omitempty"`
}

func ToUpcomingLectureResponse(s sessionmodel.LiveSessionModel) UpcomingLectureResponse {
	resp := UpcomingLectureResponse{
		LiveLectureID: s.LiveLectureID,
		RoomID:        s.RoomID,
		StartTime:     s.StartTime,
		Status:        string(s.Status),
	}
	if s.Lesson != nil {
		resp.LessonTitle = s.Lesson.Title
	}
	return resp
}
