package repositories

import (
	"errors"

	"evervoice_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("memory profile not found")

type ProfileRepository interface {
	FindByUserID(userID string) (*models.MemoryProfile, error)
	Save(profile *models.MemoryProfile) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.MemoryProfile, error) {
	var profile models.MemoryProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Save upserts by user_id so concurrent lazy creation for the same user
// cannot produce duplicates.
func (r *ProfileRepositoryImpl) Save(profile *models.MemoryProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"voice_clone_id", "photo_url", "display_name", "personality_prompt", "updated_at",
		}),
	}).Create(profile).Error
}
