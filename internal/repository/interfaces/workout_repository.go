package interfaces

import (
	"context"

	domain "workout-buddy/internal/domain/workout"
)

// WorkoutRepository определяет контракт для работы с тренировками и их составом.
//
// Многошаговые операции (AddExercise, RemoveExercise) обязаны выполняться в
// одной транзакции: сбой на любом шаге откатывает всё.
type WorkoutRepository interface {
	// Create создает тренировку и записывает назначенный ID в переданную модель.
	// Возвращает ErrWorkoutNameExists при нарушении уникальности (user_id, name)
	// и ErrNotFound, если пользователь не существует.
	Create(ctx context.Context, w *domain.Workout) error

	// GetByID возвращает тренировку по идентификатору.
	// Возвращает (nil, ErrNotFound), если тренировка не найдена.
	GetByID(ctx context.Context, id int64) (*domain.Workout, error)

	// ListByUser возвращает тренировки пользователя в порядке создания.
	ListByUser(ctx context.Context, userID int64) ([]domain.Summary, error)

	// AddExercise добавляет упражнение с планом подходов в хвост тренировки.
	//
	// Чтение максимального exercise_order, вставка WorkoutExercise и пакетная
	// вставка подходов выполняются в одной транзакции; чтение порядка блокирует
	// строки состава тренировки, так что два конкурентных вызова не могут
	// вычислить одинаковый next_order.
	//
	// Возвращает ErrNotFound, если тренировка или упражнение не существуют.
	AddExercise(ctx context.Context, workoutID, exerciseID int64, plans []domain.SetPlan) (*domain.WorkoutExercise, error)

	// RemoveExercise удаляет упражнение из тренировки вместе с плановыми
	// подходами и записями результатов, сопоставленными по составному ключу
	// (workout_id, exercise_id). Всё в одной транзакции, дети раньше родителя.
	//
	// Возвращает ErrNotFound, если записи с таким id нет: повторное удаление —
	// это ошибка, а не тихий успех.
	RemoveExercise(ctx context.Context, workoutExerciseID int64) error

	// FetchDetailRows возвращает плоские строки внешнего соединения для
	// представления тренировки, упорядоченные по exercise_order, set_number.
	// Для тренировки без упражнений возвращает пустой срез (не ошибку).
	FetchDetailRows(ctx context.Context, workoutID int64) ([]domain.DetailRow, error)
}
