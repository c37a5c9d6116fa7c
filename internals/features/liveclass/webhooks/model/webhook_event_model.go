package model

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEventModel is an audit row per provider delivery. The provider
// supplies no delivery id, so this log is the only way to reconstruct what
// arrived when (e.g. to spot a double-counted participant-left).
type WebhookEventModel struct {
	EventID     string         `gorm:"type:varchar(36);primaryKey;column:event_id" json:"event_id"`
	WebhookType string         `gorm:"type:varchar(64);not null;index;column:webhook_type" json:"webhook_type"`
	RoomID      string         `gorm:"type:varchar(128);index;column:room_id" json:"room_id"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	ReceivedAt  time.Time      `gorm:"autoCreateTime;column:received_at" json:"received_at"`
}

func (WebhookEventModel) TableName() string { return "webhook_events" }
