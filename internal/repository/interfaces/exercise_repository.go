package interfaces

import (
	"context"

	domain "workout-buddy/internal/domain/exercise"
)

// ExerciseRepository определяет контракт для чтения каталога упражнений.
// Каталог — статические справочные данные, операций записи в этой области нет.
type ExerciseRepository interface {
	// List возвращает все упражнения каталога, отсортированные по названию.
	List(ctx context.Context) ([]domain.Exercise, error)

	// GetByID возвращает упражнение по идентификатору.
	// Возвращает (nil, ErrNotFound), если упражнение не найдено.
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
}
