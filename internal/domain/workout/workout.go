package workout

import (
	"errors"
	"time"
)

// ErrInvalidSetPlan возвращается, когда план подходов содержит отрицательные значения.
var ErrInvalidSetPlan = errors.New("set plan values must be non-negative")

// Workout представляет тренировочную программу пользователя.
// Является корнем агрегата для своих WorkoutExercise.
type Workout struct {
	ID        int64     // Идентификатор тренировки
	UserID    int64     // Владелец
	Name      string    // Название; уникально в пределах пользователя
	CreatedAt time.Time // Время создания
}

// WorkoutExercise — упражнение в составе тренировки (join-сущность).
//
// ExerciseOrder — позиция упражнения в тренировке, начинается с 1.
// Новое упражнение всегда добавляется в хвост: order = max(order) + 1.
// После удаления упражнения из середины перенумерация не выполняется,
// в последовательности допускаются пропуски.
//
// DefaultSets/DefaultReps — денормализованная сводка для карточки в списке
// (количество подходов и повторения первого подхода), не источник истины.
type WorkoutExercise struct {
	ID            int64 // Идентификатор записи
	WorkoutID     int64 // Тренировка-владелец
	ExerciseID    int64 // Упражнение из каталога
	ExerciseOrder int   // Позиция в тренировке (1-based)
	DefaultSets   int   // Кэш: количество подходов
	DefaultReps   int   // Кэш: повторения первого подхода
}

// WorkoutExerciseSet — плановый подход упражнения.
// Создаётся пакетом при добавлении упражнения в тренировку; целевые значения
// после создания не редактируются.
type WorkoutExerciseSet struct {
	ID                int64   // Идентификатор подхода
	WorkoutExerciseID int64   // Упражнение-владелец
	SetNumber         int     // Номер подхода (1-based, без пропусков)
	TargetReps        int     // Целевые повторения
	TargetWeight      float64 // Целевой вес, кг
}

// SetPlan — входные данные одного планового подхода при добавлении упражнения.
type SetPlan struct {
	Reps   int     // Повторения
	Weight float64 // Вес, кг
}

// Validate проверяет корректность плана подхода.
// Нулевые значения допустимы: клиент предупреждает о них, но не блокирует.
func (p SetPlan) Validate() error {
	if p.Reps < 0 || p.Weight < 0 {
		return ErrInvalidSetPlan
	}
	return nil
}

// NewWorkout — фабрика тренировки; ID назначается хранилищем.
func NewWorkout(userID int64, name string) *Workout {
	return &Workout{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
