package repositories

import (
	"errors"

	"evervoice_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("video job not found")

type JobRepository interface {
	Create(job *models.VideoJob) error

	// FindByProviderJobID scopes the lookup to the owning user:
	// another user's job id behaves exactly like a missing one.
	FindByProviderJobID(providerJobID, userID string) (*models.VideoJob, error)

	// UpdateStatus persists a reconciled status/result pair.
	UpdateStatus(id string, status models.JobStatus, resultURL string) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.VideoJob) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByProviderJobID(providerJobID, userID string) (*models.VideoJob, error) {
	var job models.VideoJob
	err := r.db.First(&job, "provider_job_id = ? AND user_id = ?", providerJobID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) UpdateStatus(id string, status models.JobStatus, resultURL string) error {
	return r.db.Model(&models.VideoJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"result_url": resultURL,
		}).Error
}
