package repositories

import (
	"errors"
	"time"

	"evervoice_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoGenerationMark = errors.New("no last-generation mark")

	// ErrDailyBudgetExceeded is returned when a conditional increment
	// would push the day's counter past the plan budget.
	ErrDailyBudgetExceeded = errors.New("daily character budget exceeded")
)

// UsageRepository persists the two quota-ledger records: the per-day chat
// character counter and the per-user last-successful-generation mark.
type UsageRepository interface {
	// GetUsedChars returns the accumulated character count for the day,
	// zero when no row exists yet.
	GetUsedChars(userID string, day time.Time) (int, error)

	// AddUsedChars increments the day's counter, creating the row on
	// first use, and returns the new total. The increment is a single
	// budget-conditional upsert: when the new total would exceed limit
	// the row is left untouched and ErrDailyBudgetExceeded is returned,
	// so two concurrent sends for the same user cannot jointly overrun
	// the budget.
	AddUsedChars(userID string, day time.Time, n, limit int) (int, error)

	FindLastGenerated(userID string) (*models.VideoLastGenerated, error)
	UpsertLastGenerated(userID string, at time.Time) error
}

type UsageRepositoryImpl struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &UsageRepositoryImpl{db: db}
}

func (r *UsageRepositoryImpl) GetUsedChars(userID string, day time.Time) (int, error) {
	var row models.ChatUsageDaily
	err := r.db.First(&row, "user_id = ? AND usage_date = ?", userID, day.Format("2006-01-02")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.UsedChars, nil
}

func (r *UsageRepositoryImpl) AddUsedChars(userID string, day time.Time, n, limit int) (int, error) {
	if n > limit {
		return 0, ErrDailyBudgetExceeded
	}

	// The WHERE clause makes the increment conditional on the budget, so
	// the check happens inside the same statement as the write. A fresh
	// insert is safe unconditionally since n <= limit was verified above.
	var used int
	res := r.db.Raw(`
		INSERT INTO chat_usage_daily (id, user_id, usage_date, used_chars, created_at, updated_at)
		VALUES (?, ?, ?, ?, now(), now())
		ON CONFLICT (user_id, usage_date)
		DO UPDATE SET used_chars = chat_usage_daily.used_chars + EXCLUDED.used_chars,
		              updated_at = now()
		WHERE chat_usage_daily.used_chars + EXCLUDED.used_chars <= ?
		RETURNING used_chars`,
		uuid.NewString(), userID, day.Format("2006-01-02"), n, limit,
	).Scan(&used)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrDailyBudgetExceeded
	}
	return used, nil
}

func (r *UsageRepositoryImpl) FindLastGenerated(userID string) (*models.VideoLastGenerated, error) {
	var mark models.VideoLastGenerated
	if err := r.db.First(&mark, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoGenerationMark
		}
		return nil, err
	}
	return &mark, nil
}

func (r *UsageRepositoryImpl) UpsertLastGenerated(userID string, at time.Time) error {
	mark := &models.VideoLastGenerated{
		UserID:          userID,
		LastGeneratedAt: at,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_generated_at", "updated_at"}),
	}).Create(mark).Error
}
