package exercise

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"workout-buddy/internal/handler/response"
	workoutuc "workout-buddy/internal/usecase/workout"
)

// ExerciseResponse — элемент каталога упражнений для экрана выбора.
type ExerciseResponse struct {
	ExerciseID   int64   `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	ImageURL     *string `json:"image_url,omitempty"`
}

// Handler обрабатывает HTTP-запросы к каталогу упражнений.
type Handler struct {
	workouts workoutuc.Service
}

// NewHandler создаёт новый ExerciseHandler.
func NewHandler(workouts workoutuc.Service) *Handler {
	return &Handler{workouts: workouts}
}

// List возвращает каталог упражнений, отсортированный по названию (GET /exercises).
func (h *Handler) List(c *gin.Context) {
	exercises, err := h.workouts.ListExercises(c.Request.Context())
	if err != nil {
		log.Printf("internal error in List exercises: err=%v", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]ExerciseResponse, 0, len(exercises))
	for _, ex := range exercises {
		result = append(result, ExerciseResponse{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			ImageURL:     ex.ImageURL,
		})
	}
	c.JSON(http.StatusOK, result)
}
