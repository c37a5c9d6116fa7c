package dto

type StartClassRequest struct {
	ScheduleID int    `json:"schedule_id" validate:"required,gt=0"`
	Topic      string `json:"topic"`
}

type EndClassRequest struct {
	LiveLectureID int `json:"live_lecture_id" validate:"required,gt=0"`
}
