package workout

import domain "workout-buddy/internal/domain/workout"

// WorkoutSummaryResponse — элемент списка тренировок для домашнего экрана.
type WorkoutSummaryResponse struct {
	WorkoutID   int64  `json:"workout_id"`
	WorkoutName string `json:"workout_name"`
}

// CreateWorkoutRequest описывает тело запроса создания тренировки.
type CreateWorkoutRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	WorkoutName string `json:"workout_name" binding:"required"`
}

// CreateWorkoutResponse — ответ при успешном создании тренировки.
type CreateWorkoutResponse struct {
	ID int64 `json:"id"`
}

// SetPlanRequest — один плановый подход при добавлении упражнения.
// Нулевые значения допустимы: клиент предупреждает о них, но не блокирует.
type SetPlanRequest struct {
	SetNumber int     `json:"set_number"`
	Reps      int     `json:"reps" binding:"min=0"`
	Weight    float64 `json:"weight" binding:"min=0"`
}

// AddExerciseRequest описывает тело запроса добавления упражнения в тренировку.
// Порядок элементов SetsData определяет итоговые set_number (1-based),
// присланные клиентом set_number носят справочный характер.
type AddExerciseRequest struct {
	ExerciseID int64            `json:"exercise_id" binding:"required"`
	SetsData   []SetPlanRequest `json:"setsData" binding:"required,min=1,dive"`
}

// AddExerciseResponse — ответ при успешном добавлении упражнения.
type AddExerciseResponse struct {
	WorkoutExerciseID int64 `json:"workout_exercise_id"`
}

// SetDetailResponse — подход в представлении тренировки.
type SetDetailResponse struct {
	SetID         int64   `json:"set_id"`
	SetNumber     int     `json:"set_number"`
	Reps          int     `json:"reps"`
	Weight        float64 `json:"weight"`
	PerformanceID *int64  `json:"performance_id"`
	IsCompleted   bool    `json:"is_completed"`
}

// ExerciseDetailResponse — упражнение в представлении тренировки.
type ExerciseDetailResponse struct {
	WorkoutExerciseID int64               `json:"workout_exercise_id"`
	ExerciseID        int64               `json:"exercise_id"`
	ExerciseName      string              `json:"exercise_name"`
	ExerciseOrder     int                 `json:"exercise_order"`
	ImageURL          *string             `json:"image_url"`
	Sets              []SetDetailResponse `json:"sets"`
}

// WorkoutDetailsResponse — денормализованное представление тренировки для клиента.
type WorkoutDetailsResponse struct {
	WorkoutName string                   `json:"workout_name"`
	Exercises   []ExerciseDetailResponse `json:"exercises"`
}

// toDetailsResponse маппит доменное представление в DTO.
func toDetailsResponse(d *domain.Details) WorkoutDetailsResponse {
	exercises := make([]ExerciseDetailResponse, 0, len(d.Exercises))
	for _, ex := range d.Exercises {
		sets := make([]SetDetailResponse, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			sets = append(sets, SetDetailResponse{
				SetID:         set.SetID,
				SetNumber:     set.SetNumber,
				Reps:          set.Reps,
				Weight:        set.Weight,
				PerformanceID: set.PerformanceID,
				IsCompleted:   set.IsCompleted,
			})
		}
		exercises = append(exercises, ExerciseDetailResponse{
			WorkoutExerciseID: ex.WorkoutExerciseID,
			ExerciseID:        ex.ExerciseID,
			ExerciseName:      ex.ExerciseName,
			ExerciseOrder:     ex.ExerciseOrder,
			ImageURL:          ex.ImageURL,
			Sets:              sets,
		})
	}
	return WorkoutDetailsResponse{
		WorkoutName: d.WorkoutName,
		Exercises:   exercises,
	}
}
