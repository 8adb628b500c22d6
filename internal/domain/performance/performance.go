package performance

import "time"

// Record представляет фактический результат одного подхода.
//
// Сопоставляется с плановым подходом по составному ключу
// (user_id, workout_id, exercise_id, set_number), а не по внешнему ключу:
// запись создаётся лениво при первой отметке, ещё до того как клиент
// перечитал плановые данные. Инвариант: не более одной записи на ключ.
type Record struct {
	ID            int64     // Идентификатор записи
	UserID        int64     // Пользователь
	WorkoutID     int64     // Тренировка
	ExerciseID    int64     // Упражнение
	SetNumber     int       // Номер подхода
	DatePerformed time.Time // Время первой отметки; при повторных переключениях не обновляется
	WeightKG      float64   // Фактический вес, кг
	RepsCompleted int       // Фактические повторения
	IsCompleted   bool      // Отмечен ли подход выполненным
}

// Key — составной ключ записи результата.
type Key struct {
	UserID     int64
	WorkoutID  int64
	ExerciseID int64
	SetNumber  int
}

// Key возвращает составной ключ записи.
func (r *Record) Key() Key {
	return Key{
		UserID:     r.UserID,
		WorkoutID:  r.WorkoutID,
		ExerciseID: r.ExerciseID,
		SetNumber:  r.SetNumber,
	}
}

// NewRecord — фабрика записи результата при первой отметке подхода.
// Фиксирует момент выполнения; ID назначается хранилищем.
func NewRecord(key Key, weightKG float64, repsCompleted int, isCompleted bool) *Record {
	return &Record{
		UserID:        key.UserID,
		WorkoutID:     key.WorkoutID,
		ExerciseID:    key.ExerciseID,
		SetNumber:     key.SetNumber,
		DatePerformed: time.Now().UTC(),
		WeightKG:      weightKG,
		RepsCompleted: repsCompleted,
		IsCompleted:   isCompleted,
	}
}
