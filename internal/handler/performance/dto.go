package performance

// LogSetRequest описывает тело запроса создания записи результата.
// Присылается при первой отметке подхода, когда performance_id ещё нет.
type LogSetRequest struct {
	UserID        int64   `json:"user_id" binding:"required"`
	WorkoutID     int64   `json:"workout_id" binding:"required"`
	ExerciseID    int64   `json:"exercise_id" binding:"required"`
	SetNumber     int     `json:"set_number" binding:"required,min=1"`
	WeightKG      float64 `json:"weight_kg" binding:"min=0"`
	RepsCompleted int     `json:"reps_completed" binding:"min=0"`
	IsCompleted   bool    `json:"is_completed"`
}

// LogSetResponse — ответ при успешной фиксации подхода.
type LogSetResponse struct {
	PerformanceID int64 `json:"performance_id"`
	IsCompleted   bool  `json:"is_completed"`
}

// SetCompletionRequest описывает тело запроса переключения флага выполнения.
// Указатель, чтобы отличить присланный false от отсутствующего поля.
type SetCompletionRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

// SetCompletionResponse — ответ при успешном переключении флага.
type SetCompletionResponse struct {
	IsCompleted bool `json:"is_completed"`
}
