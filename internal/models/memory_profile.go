package models

// MemoryProfile holds the per-user voice clone and photo used to render
// the avatar, plus the persona fed to the chat model. Created lazily on
// first profile upsert, photo upload or voice sample upload.
type MemoryProfile struct {
	BaseModel
	UserID            string `gorm:"type:uuid;not null;uniqueIndex"`
	VoiceCloneID      string
	PhotoURL          string
	DisplayName       string
	PersonalityPrompt string `gorm:"type:text"`
}

func (MemoryProfile) TableName() string {
	return "memory_profiles"
}

// ReadyForVideo reports whether the profile carries everything a video
// submission needs.
func (p *MemoryProfile) ReadyForVideo() bool {
	return p != nil && p.VoiceCloneID != "" && p.PhotoURL != ""
}
