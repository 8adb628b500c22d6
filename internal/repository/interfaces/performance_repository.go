package interfaces

import (
	"context"

	domain "workout-buddy/internal/domain/performance"
)

// PerformanceRepository определяет контракт для работы с записями результатов.
//
// Инвариант хранилища: не более одной записи на составной ключ
// (user_id, workout_id, exercise_id, set_number); уровень выше обязан
// чередовать Create/UpdateCompletion по результату GetByKey, а не вставлять вслепую.
type PerformanceRepository interface {
	// Create создает запись результата и записывает назначенный ID в модель.
	Create(ctx context.Context, rec *domain.Record) error

	// GetByID возвращает запись по идентификатору.
	// Возвращает (nil, ErrNotFound), если записи нет.
	GetByID(ctx context.Context, id int64) (*domain.Record, error)

	// GetByKey возвращает запись по точному составному ключу.
	// Возвращает (nil, ErrNotFound), если записи нет.
	GetByKey(ctx context.Context, key domain.Key) (*domain.Record, error)

	// UpdateCompletion выставляет флаг is_completed существующей записи.
	// date_performed при этом не обновляется — фиксируется только момент
	// первой отметки. Возвращает ErrNotFound, если записи с таким id нет.
	UpdateCompletion(ctx context.Context, id int64, isCompleted bool) error
}
