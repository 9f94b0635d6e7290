package models

import "time"

// ChatUsageDaily accumulates chat input characters per user per calendar
// day. One row per (user, date); usedChars only grows within a day and the
// quota rolls over naturally as the date key changes.
type ChatUsageDaily struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uk_chat_usage_user_date"`
	UsageDate time.Time `gorm:"type:date;not null;uniqueIndex:uk_chat_usage_user_date"`
	UsedChars int       `gorm:"not null;default:0"`
}

func (ChatUsageDaily) TableName() string {
	return "chat_usage_daily"
}

// VideoLastGenerated marks the most recent successful video generation per
// user. Upserted on the first observation of a DONE transition; drives the
// interval-based video rate limit.
type VideoLastGenerated struct {
	BaseModel
	UserID          string    `gorm:"type:uuid;not null;uniqueIndex"`
	LastGeneratedAt time.Time `gorm:"not null"`
}

func (VideoLastGenerated) TableName() string {
	return "video_last_generated"
}
