package performance

import (
	"context"
	"errors"

	domain "workout-buddy/internal/domain/performance"
	repo "workout-buddy/internal/repository/interfaces"
)

// ErrMissingKey возвращается, когда составной ключ подхода заполнен не полностью.
var ErrMissingKey = errors.New("user, workout, exercise and set number are required")

// LogSetInput — входные данные отметки подхода.
type LogSetInput struct {
	UserID        int64
	WorkoutID     int64
	ExerciseID    int64
	SetNumber     int
	WeightKG      float64
	RepsCompleted int
	IsCompleted   bool
}

// Service описывает usecase-слой учёта результатов: машину состояний
// отметки подхода поверх составного ключа.
//
// Состояния подхода: «не логировался» (записи нет) → «выполнен»/«не выполнен»
// (запись есть, переключается флаг). Запись создаётся лениво при первой
// отметке; повторные переключения обновляют её на месте, вторая запись на
// тот же ключ не появляется никогда.
type Service interface {
	// LogSet фиксирует состояние подхода. Сервис сначала ищет запись по
	// точному составному ключу и только потом решает, вставлять или
	// обновлять — слепая вставка нарушила бы инвариант «не более одной
	// записи на ключ». Возвращает актуальную запись.
	LogSet(ctx context.Context, input LogSetInput) (*domain.Record, error)

	// SetCompletion выставляет флаг выполнения существующей записи по её id.
	// Перед обновлением перепроверяет, что запись существует: клиентскому
	// performance_id не доверяем, устаревший id — это ErrNotFound, а не
	// тихое создание. date_performed не обновляется.
	SetCompletion(ctx context.Context, performanceID int64, isCompleted bool) (*domain.Record, error)
}

type service struct {
	records repo.PerformanceRepository
}

// NewService создаёт новый сервис учёта результатов.
func NewService(records repo.PerformanceRepository) Service {
	return &service{records: records}
}

// LogSet фиксирует состояние подхода: create-or-update по составному ключу.
func (s *service) LogSet(ctx context.Context, input LogSetInput) (*domain.Record, error) {
	if input.UserID <= 0 || input.WorkoutID <= 0 || input.ExerciseID <= 0 || input.SetNumber <= 0 {
		return nil, ErrMissingKey
	}

	key := domain.Key{
		UserID:     input.UserID,
		WorkoutID:  input.WorkoutID,
		ExerciseID: input.ExerciseID,
		SetNumber:  input.SetNumber,
	}

	existing, err := s.records.GetByKey(ctx, key)
	switch {
	case err == nil:
		// Запись уже есть — обновляем флаг на месте, момент первого
		// выполнения (date_performed) сохраняется.
		if err := s.records.UpdateCompletion(ctx, existing.ID, input.IsCompleted); err != nil {
			return nil, err
		}
		existing.IsCompleted = input.IsCompleted
		return existing, nil

	case errors.Is(err, repo.ErrNotFound):
		rec := domain.NewRecord(key, input.WeightKG, input.RepsCompleted, input.IsCompleted)
		if err := s.records.Create(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil

	default:
		return nil, err
	}
}

// SetCompletion выставляет флаг выполнения существующей записи.
func (s *service) SetCompletion(ctx context.Context, performanceID int64, isCompleted bool) (*domain.Record, error) {
	rec, err := s.records.GetByID(ctx, performanceID)
	if err != nil {
		return nil, err
	}

	if err := s.records.UpdateCompletion(ctx, rec.ID, isCompleted); err != nil {
		return nil, err
	}

	rec.IsCompleted = isCompleted
	return rec, nil
}
