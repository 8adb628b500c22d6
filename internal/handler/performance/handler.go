package performance

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workout-buddy/internal/handler/response"
	repo "workout-buddy/internal/repository/interfaces"
	perfuc "workout-buddy/internal/usecase/performance"
)

// Handler обрабатывает HTTP-запросы, связанные с записями результатов.
type Handler struct {
	records perfuc.Service
}

// NewHandler создаёт новый PerformanceHandler.
func NewHandler(records perfuc.Service) *Handler {
	return &Handler{records: records}
}

// LogSet фиксирует состояние подхода (POST /performance).
func (h *Handler) LogSet(c *gin.Context) {
	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "user_id, workout_id, exercise_id and set_number are required")
		return
	}

	rec, err := h.records.LogSet(c.Request.Context(), perfuc.LogSetInput{
		UserID:        req.UserID,
		WorkoutID:     req.WorkoutID,
		ExerciseID:    req.ExerciseID,
		SetNumber:     req.SetNumber,
		WeightKG:      req.WeightKG,
		RepsCompleted: req.RepsCompleted,
		IsCompleted:   req.IsCompleted,
	})
	if err != nil {
		if errors.Is(err, perfuc.ErrMissingKey) {
			response.Error(c, http.StatusBadRequest, "user_id, workout_id, exercise_id and set_number are required")
			return
		}
		log.Printf("internal error in LogSet: workout_id=%d exercise_id=%d set=%d err=%v",
			req.WorkoutID, req.ExerciseID, req.SetNumber, err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, LogSetResponse{
		PerformanceID: rec.ID,
		IsCompleted:   rec.IsCompleted,
	})
}

// SetCompletion переключает флаг выполнения (PUT /performance/:performance_id).
func (h *Handler) SetCompletion(c *gin.Context) {
	performanceID, err := strconv.ParseInt(c.Param("performance_id"), 10, 64)
	if err != nil || performanceID <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid performance id")
		return
	}

	var req SetCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "is_completed is required")
		return
	}

	rec, err := h.records.SetCompletion(c.Request.Context(), performanceID, *req.IsCompleted)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Устаревший performance_id у клиента — сообщаем, клиент перечитает представление.
			response.Error(c, http.StatusNotFound, "Performance record not found")
			return
		}
		log.Printf("internal error in SetCompletion: performance_id=%d err=%v", performanceID, err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, SetCompletionResponse{IsCompleted: rec.IsCompleted})
}
