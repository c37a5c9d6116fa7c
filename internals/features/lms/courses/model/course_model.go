package model

import "time"

type CourseModel struct {
	CourseID     int       `gorm:"primaryKey;autoIncrement;column:course_id" json:"course_id"`
	Title        string    `gorm:"type:varchar(255);not null;column:title" json:"title"`
	Description  *string   `gorm:"type:text;column:description" json:"description,omitempty"`
	ThumbnailURL *string   `gorm:"type:text;column:thumbnail_url" json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (CourseModel) TableName() string { return "courses" }
