package models

import "gorm.io/datatypes"

// VideoJob is the durable record of one avatar generation submission.
// Created at submission, mutated only by the status poll path, never
// deleted (audit trail). ResultURL is set exactly when Status is DONE.
type VideoJob struct {
	BaseModel
	UserID        string    `gorm:"type:uuid;not null;index"`
	ProviderJobID string    `gorm:"not null;uniqueIndex"`
	Provider      string    `gorm:"type:varchar(20);not null"` // did, heygen
	Status        JobStatus `gorm:"type:varchar(20);not null"`
	PhotoURL      string    // snapshot at submission time
	AudioURL      string
	ResultURL     string
	ProviderMeta  datatypes.JSON `gorm:"type:jsonb"` // raw submission response, for diagnostics
}

func (VideoJob) TableName() string {
	return "video_jobs"
}
