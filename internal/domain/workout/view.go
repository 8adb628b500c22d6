package workout

// Summary — элемент списка тренировок пользователя на домашнем экране.
type Summary struct {
	ID   int64  // Идентификатор тренировки
	Name string // Название
}

// Details — денормализованное представление тренировки для клиента:
// тренировка → упорядоченные упражнения → упорядоченные подходы с флагами
// выполнения. Собирается из нормализованных таблиц одним запросом.
type Details struct {
	WorkoutName string
	Exercises   []ExerciseDetail
}

// ExerciseDetail — упражнение в составе представления тренировки.
type ExerciseDetail struct {
	WorkoutExerciseID int64
	ExerciseID        int64
	ExerciseName      string
	ExerciseOrder     int
	ImageURL          *string
	Sets              []SetDetail
}

// SetDetail — подход в составе представления: плановые цели плюс фактическое
// состояние выполнения. PerformanceID равен nil, пока подход ни разу не
// отмечался — запись результата создаётся лениво при первой отметке.
type SetDetail struct {
	SetID         int64
	SetNumber     int
	Reps          int
	Weight        float64
	PerformanceID *int64
	IsCompleted   bool
}

// DetailRow — плоская строка внешнего соединения
// Workout → WorkoutExercise → Exercise → WorkoutExerciseSet → PerformanceData.
// Поля подхода и результата указательные: LEFT JOIN может дать NULL для
// упражнения без подходов и для подхода без записи результата.
type DetailRow struct {
	WorkoutName       string
	WorkoutExerciseID int64
	ExerciseID        int64
	ExerciseName      string
	ExerciseOrder     int
	ImageURL          *string
	SetID             *int64
	SetNumber         *int
	TargetReps        *int
	TargetWeight      *float64
	PerformanceID     *int64
	IsCompleted       *bool
}

// GroupDetailRows собирает плоский поток строк соединения в представление
// Details. Группирует по WorkoutExerciseID с сохранением порядка первого
// вхождения (строки обязаны приходить упорядоченными по exercise_order,
// set_number — это гарантирует ORDER BY запроса, а не сортировка здесь).
// Строки с NULL set_number (упражнение без подходов) не попадают в Sets.
func GroupDetailRows(rows []DetailRow) []ExerciseDetail {
	exercises := make([]ExerciseDetail, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		pos, seen := index[row.WorkoutExerciseID]
		if !seen {
			exercises = append(exercises, ExerciseDetail{
				WorkoutExerciseID: row.WorkoutExerciseID,
				ExerciseID:        row.ExerciseID,
				ExerciseName:      row.ExerciseName,
				ExerciseOrder:     row.ExerciseOrder,
				ImageURL:          row.ImageURL,
				Sets:              []SetDetail{},
			})
			pos = len(exercises) - 1
			index[row.WorkoutExerciseID] = pos
		}

		// Упражнение без подходов даёт строку с NULL set_number — пропускаем её,
		// вместо того чтобы добавлять пустой подход-заглушку.
		if row.SetNumber == nil || row.SetID == nil {
			continue
		}

		set := SetDetail{
			SetID:         *row.SetID,
			SetNumber:     *row.SetNumber,
			PerformanceID: row.PerformanceID,
		}
		if row.TargetReps != nil {
			set.Reps = *row.TargetReps
		}
		if row.TargetWeight != nil {
			set.Weight = *row.TargetWeight
		}
		if row.IsCompleted != nil {
			set.IsCompleted = *row.IsCompleted
		}
		exercises[pos].Sets = append(exercises[pos].Sets, set)
	}

	return exercises
}
