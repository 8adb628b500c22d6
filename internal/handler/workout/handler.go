package workout

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "workout-buddy/internal/domain/workout"
	"workout-buddy/internal/handler/response"
	repo "workout-buddy/internal/repository/interfaces"
	workoutuc "workout-buddy/internal/usecase/workout"
)

// Handler обрабатывает HTTP-запросы, связанные с тренировками и их составом.
type Handler struct {
	workouts workoutuc.Service
}

// NewHandler создаёт новый WorkoutHandler.
func NewHandler(workouts workoutuc.Service) *Handler {
	return &Handler{workouts: workouts}
}

// parseIDParam извлекает числовой идентификатор из параметра пути.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// List возвращает список тренировок пользователя (GET /workouts?user_id=).
func (h *Handler) List(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "user_id is required")
		return
	}

	summaries, err := h.workouts.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		log.Printf("internal error in List workouts: user_id=%d err=%v", userID, err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]WorkoutSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, WorkoutSummaryResponse{
			WorkoutID:   s.ID,
			WorkoutName: s.Name,
		})
	}
	c.JSON(http.StatusOK, result)
}

// Create создает тренировку (POST /workouts).
func (h *Handler) Create(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "workout_name and user_id are required")
		return
	}

	w, err := h.workouts.CreateWorkout(c.Request.Context(), req.UserID, req.WorkoutName)
	if err != nil {
		switch {
		case errors.Is(err, workoutuc.ErrEmptyWorkoutName), errors.Is(err, workoutuc.ErrMissingUser):
			response.Error(c, http.StatusBadRequest, "workout_name and user_id are required")
		case errors.Is(err, repo.ErrWorkoutNameExists):
			response.Error(c, http.StatusConflict, "A workout with this name already exists")
		case errors.Is(err, repo.ErrNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			log.Printf("internal error in Create workout: user_id=%d err=%v", req.UserID, err)
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, CreateWorkoutResponse{ID: w.ID})
}

// Get возвращает представление тренировки (GET /workouts/:workout_id).
func (h *Handler) Get(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "workout_id")
	if !ok {
		return
	}

	details, err := h.workouts.GetWorkout(c.Request.Context(), workoutID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Workout not found")
			return
		}
		log.Printf("internal error in Get workout: workout_id=%d err=%v", workoutID, err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, toDetailsResponse(details))
}

// AddExercise добавляет упражнение с планом подходов (POST /workouts/:workout_id/exercises).
func (h *Handler) AddExercise(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "workout_id")
	if !ok {
		return
	}

	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "exercise_id and a non-empty setsData are required")
		return
	}

	plans := make([]domain.SetPlan, 0, len(req.SetsData))
	for _, s := range req.SetsData {
		plans = append(plans, domain.SetPlan{
			Reps:   s.Reps,
			Weight: s.Weight,
		})
	}

	we, err := h.workouts.AddExercise(c.Request.Context(), workoutID, req.ExerciseID, plans)
	if err != nil {
		switch {
		case errors.Is(err, workoutuc.ErrEmptySetPlan), errors.Is(err, domain.ErrInvalidSetPlan):
			response.Error(c, http.StatusBadRequest, "setsData must contain at least one set with non-negative reps and weight")
		case errors.Is(err, repo.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Workout or exercise not found")
		default:
			log.Printf("internal error in AddExercise: workout_id=%d exercise_id=%d err=%v", workoutID, req.ExerciseID, err)
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, AddExerciseResponse{WorkoutExerciseID: we.ID})
}

// RemoveExercise удаляет упражнение из тренировки
// (DELETE /workouts/:workout_id/exercises/:workout_exercise_id).
func (h *Handler) RemoveExercise(c *gin.Context) {
	if _, ok := parseIDParam(c, "workout_id"); !ok {
		return
	}
	workoutExerciseID, ok := parseIDParam(c, "workout_exercise_id")
	if !ok {
		return
	}

	if err := h.workouts.RemoveExercise(c.Request.Context(), workoutExerciseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Повторное удаление того же id — ошибка, а не тихий успех.
			response.Error(c, http.StatusNotFound, "Workout exercise not found")
			return
		}
		log.Printf("internal error in RemoveExercise: workout_exercise_id=%d err=%v", workoutExerciseID, err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}
