package model

import "time"

// UserModel is the minimal projection of the platform user this core reads.
// Account management lives in the auth service.
type UserModel struct {
	UserID    int       `gorm:"primaryKey;autoIncrement;column:user_id" json:"user_id"`
	FullName  string    `gorm:"type:varchar(255);not null;column:full_name" json:"full_name"`
	Role      string    `gorm:"type:varchar(32);not null;default:'student';column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (UserModel) TableName() string { return "users" }
