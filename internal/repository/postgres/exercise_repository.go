package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "workout-buddy/internal/domain/exercise"
	repo "workout-buddy/internal/repository/interfaces"
)

// pgExercise представляет собой ORM-модель для таблицы exercises.
type pgExercise struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string  `gorm:"column:name;type:varchar(100);not null"`
	ImageURL *string `gorm:"column:image_url;type:text"`
}

func (pgExercise) TableName() string {
	return "exercises"
}

// ExerciseRepository реализует repo.ExerciseRepository с использованием GORM и Postgres.
type ExerciseRepository struct {
	db *gorm.DB
}

var _ repo.ExerciseRepository = (*ExerciseRepository)(nil)

// NewExerciseRepository создает новый репозиторий каталога упражнений.
func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (m *pgExercise) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:       m.ID,
		Name:     m.Name,
		ImageURL: m.ImageURL,
	}
}

// List возвращает все упражнения каталога, отсортированные по названию.
func (r *ExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	var models []pgExercise
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, 0, len(models))
	for i := range models {
		exercises = append(exercises, models[i].toDomain())
	}
	return exercises, nil
}

// GetByID возвращает упражнение по идентификатору.
func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var model pgExercise
	err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ex := model.toDomain()
	return &ex, nil
}
