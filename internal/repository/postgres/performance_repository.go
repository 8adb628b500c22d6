package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "workout-buddy/internal/domain/performance"
	repo "workout-buddy/internal/repository/interfaces"
)

// pgPerformance представляет собой ORM-модель для таблицы performance_data.
//
// Внешнего ключа на workout_exercise_sets нет намеренно: запись сопоставляется
// с плановым подходом по составному ключу и создаётся лениво при первой отметке.
type pgPerformance struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64     `gorm:"column:user_id;not null"`
	WorkoutID     int64     `gorm:"column:workout_id;not null"`
	ExerciseID    int64     `gorm:"column:exercise_id;not null"`
	SetNumber     int       `gorm:"column:set_number;not null"`
	DatePerformed time.Time `gorm:"column:date_performed;type:timestamptz;not null"`
	WeightKG      float64   `gorm:"column:weight_kg;not null"`
	RepsCompleted int       `gorm:"column:reps_completed;not null"`
	IsCompleted   bool      `gorm:"column:is_completed;not null"`
}

func (pgPerformance) TableName() string {
	return "performance_data"
}

// PerformanceRepository реализует repo.PerformanceRepository с использованием GORM и Postgres.
type PerformanceRepository struct {
	db *gorm.DB
}

var _ repo.PerformanceRepository = (*PerformanceRepository)(nil)

// NewPerformanceRepository создает новый репозиторий записей результатов.
func NewPerformanceRepository(db *gorm.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (m *pgPerformance) toDomain() *domain.Record {
	return &domain.Record{
		ID:            m.ID,
		UserID:        m.UserID,
		WorkoutID:     m.WorkoutID,
		ExerciseID:    m.ExerciseID,
		SetNumber:     m.SetNumber,
		DatePerformed: m.DatePerformed,
		WeightKG:      m.WeightKG,
		RepsCompleted: m.RepsCompleted,
		IsCompleted:   m.IsCompleted,
	}
}

// Create создает запись результата и записывает назначенный ID в доменную модель.
func (r *PerformanceRepository) Create(ctx context.Context, rec *domain.Record) error {
	model := &pgPerformance{
		UserID:        rec.UserID,
		WorkoutID:     rec.WorkoutID,
		ExerciseID:    rec.ExerciseID,
		SetNumber:     rec.SetNumber,
		DatePerformed: rec.DatePerformed,
		WeightKG:      rec.WeightKG,
		RepsCompleted: rec.RepsCompleted,
		IsCompleted:   rec.IsCompleted,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	rec.ID = model.ID
	return nil
}

// GetByID возвращает запись по идентификатору.
func (r *PerformanceRepository) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	var model pgPerformance
	err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// GetByKey возвращает запись по точному составному ключу.
func (r *PerformanceRepository) GetByKey(ctx context.Context, key domain.Key) (*domain.Record, error) {
	var model pgPerformance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND workout_id = ? AND exercise_id = ? AND set_number = ?",
			key.UserID, key.WorkoutID, key.ExerciseID, key.SetNumber).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// UpdateCompletion выставляет флаг is_completed существующей записи.
// date_performed не трогаем: фиксируется только момент первой отметки.
func (r *PerformanceRepository) UpdateCompletion(ctx context.Context, id int64, isCompleted bool) error {
	result := r.db.WithContext(ctx).
		Model(&pgPerformance{}).
		Where("id = ?", id).
		Update("is_completed", isCompleted)
	if result.Error != nil {
		return result.Error
	}

	// Если ни одна строка не была обновлена — записи нет (устаревший id у клиента).
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
