package workout

import (
	"context"
	"errors"
	"strings"

	exdomain "workout-buddy/internal/domain/exercise"
	domain "workout-buddy/internal/domain/workout"
	repo "workout-buddy/internal/repository/interfaces"
)

var (
	// ErrEmptyWorkoutName возвращается при попытке создать тренировку без названия.
	ErrEmptyWorkoutName = errors.New("workout name must not be empty")

	// ErrMissingUser возвращается, когда операция требует идентификатор пользователя.
	ErrMissingUser = errors.New("user id is required")

	// ErrEmptySetPlan возвращается при попытке добавить упражнение без единого подхода.
	ErrEmptySetPlan = errors.New("at least one set is required")
)

// Service описывает usecase-слой составления тренировок и их чтения:
// создание тренировки, добавление/удаление упражнений с планом подходов
// и сборку денормализованного представления для клиента.
type Service interface {
	// CreateWorkout создает тренировку с заданным названием.
	// Возвращает ErrEmptyWorkoutName/ErrMissingUser при некорректном вводе,
	// ErrWorkoutNameExists при дубликате названия у этого пользователя.
	CreateWorkout(ctx context.Context, userID int64, name string) (*domain.Workout, error)

	// ListWorkouts возвращает тренировки пользователя для домашнего экрана.
	ListWorkouts(ctx context.Context, userID int64) ([]domain.Summary, error)

	// AddExercise добавляет упражнение с планом подходов в хвост тренировки.
	// plans должен быть непустым; нулевые reps/weight допустимы.
	AddExercise(ctx context.Context, workoutID, exerciseID int64, plans []domain.SetPlan) (*domain.WorkoutExercise, error)

	// RemoveExercise удаляет упражнение из тренировки с каскадной очисткой
	// подходов и истории результатов. Повторное удаление — ErrNotFound.
	RemoveExercise(ctx context.Context, workoutExerciseID int64) error

	// GetWorkout собирает представление тренировки: упорядоченные упражнения,
	// их подходы и флаги выполнения. Для тренировки без упражнений возвращает
	// пустой список упражнений, а название добирает отдельным запросом.
	GetWorkout(ctx context.Context, workoutID int64) (*domain.Details, error)

	// ListExercises возвращает каталог упражнений, отсортированный по названию.
	ListExercises(ctx context.Context) ([]exdomain.Exercise, error)
}

type service struct {
	workouts  repo.WorkoutRepository
	exercises repo.ExerciseRepository
}

// NewService создаёт новый сервис тренировок.
func NewService(workouts repo.WorkoutRepository, exercises repo.ExerciseRepository) Service {
	return &service{workouts: workouts, exercises: exercises}
}

// CreateWorkout создает тренировку.
func (s *service) CreateWorkout(ctx context.Context, userID int64, name string) (*domain.Workout, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyWorkoutName
	}

	w := domain.NewWorkout(userID, name)
	if err := s.workouts.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// ListWorkouts возвращает тренировки пользователя.
func (s *service) ListWorkouts(ctx context.Context, userID int64) ([]domain.Summary, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}
	return s.workouts.ListByUser(ctx, userID)
}

// AddExercise добавляет упражнение с планом подходов.
func (s *service) AddExercise(ctx context.Context, workoutID, exerciseID int64, plans []domain.SetPlan) (*domain.WorkoutExercise, error) {
	if len(plans) == 0 {
		return nil, ErrEmptySetPlan
	}
	for _, plan := range plans {
		if err := plan.Validate(); err != nil {
			return nil, err
		}
	}

	return s.workouts.AddExercise(ctx, workoutID, exerciseID, plans)
}

// RemoveExercise удаляет упражнение из тренировки.
func (s *service) RemoveExercise(ctx context.Context, workoutExerciseID int64) error {
	return s.workouts.RemoveExercise(ctx, workoutExerciseID)
}

// GetWorkout собирает представление тренировки из плоских строк соединения.
func (s *service) GetWorkout(ctx context.Context, workoutID int64) (*domain.Details, error) {
	rows, err := s.workouts.FetchDetailRows(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	// Тренировка без упражнений даёт ноль строк: название нельзя взять из
	// результата соединения, добираем его отдельным запросом (он же отличает
	// пустую тренировку от несуществующей).
	if len(rows) == 0 {
		w, err := s.workouts.GetByID(ctx, workoutID)
		if err != nil {
			return nil, err
		}
		return &domain.Details{
			WorkoutName: w.Name,
			Exercises:   []domain.ExerciseDetail{},
		}, nil
	}

	return &domain.Details{
		WorkoutName: rows[0].WorkoutName,
		Exercises:   domain.GroupDetailRows(rows),
	}, nil
}

// ListExercises возвращает каталог упражнений.
func (s *service) ListExercises(ctx context.Context) ([]exdomain.Exercise, error) {
	return s.exercises.List(ctx)
}
