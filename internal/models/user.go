package models

type User struct {
	BaseModelWithDeleted
	Email        string       `gorm:"uniqueIndex;not null"`
	PasswordHash string       `gorm:"not null"`
	Nickname     string       `gorm:"not null"`
	AuthProvider AuthProvider `gorm:"type:varchar(20);not null;default:'local'"`
	Role         UserRole     `gorm:"type:varchar(20);not null;default:'user'"`
	PlanTier     PlanTier     `gorm:"type:varchar(20);not null;default:'FREE'"`
	Consent      bool         `gorm:"default:false"` // digital legacy consent

	// Relations
	MemoryProfile *MemoryProfile `gorm:"foreignKey:UserID"`
	VideoJobs     []VideoJob     `gorm:"foreignKey:UserID"`
}
