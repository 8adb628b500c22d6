package workout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	exdomain "workout-buddy/internal/domain/exercise"
	domain "workout-buddy/internal/domain/workout"
	workouthandler "workout-buddy/internal/handler/workout"
	repo "workout-buddy/internal/repository/interfaces"
	workoutuc "workout-buddy/internal/usecase/workout"
)

// fakeWorkoutService реализует workoutuc.Service с управляемыми ответами.
type fakeWorkoutService struct {
	createErr     error
	created       *domain.Workout
	summaries     []domain.Summary
	addedExercise *domain.WorkoutExercise
	addErr        error
	removeErr     error
	details       *domain.Details
	getErr        error
	catalog       []exdomain.Exercise

	removedID int64
}

func (f *fakeWorkoutService) CreateWorkout(_ context.Context, userID int64, name string) (*domain.Workout, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	return &domain.Workout{ID: 1, UserID: userID, Name: name}, nil
}

func (f *fakeWorkoutService) ListWorkouts(context.Context, int64) ([]domain.Summary, error) {
	return f.summaries, nil
}

func (f *fakeWorkoutService) AddExercise(context.Context, int64, int64, []domain.SetPlan) (*domain.WorkoutExercise, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	return f.addedExercise, nil
}

func (f *fakeWorkoutService) RemoveExercise(_ context.Context, workoutExerciseID int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedID = workoutExerciseID
	return nil
}

func (f *fakeWorkoutService) GetWorkout(context.Context, int64) (*domain.Details, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.details, nil
}

func (f *fakeWorkoutService) ListExercises(context.Context) ([]exdomain.Exercise, error) {
	return f.catalog, nil
}

func newRouter(svc workoutuc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := workouthandler.NewHandler(svc)
	r.GET("/workouts", h.List)
	r.POST("/workouts", h.Create)
	r.GET("/workouts/:workout_id", h.Get)
	r.POST("/workouts/:workout_id/exercises", h.AddExercise)
	r.DELETE("/workouts/:workout_id/exercises/:workout_exercise_id", h.RemoveExercise)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp, "error")
	return resp["error"]
}

// ==== GET /workouts ====

func TestList_RequiresUserID(t *testing.T) {
	r := newRouter(&fakeWorkoutService{})

	w := doJSON(t, r, http.MethodGet, "/workouts", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, errorBody(t, w))
}

func TestList_ReturnsSummaries(t *testing.T) {
	svc := &fakeWorkoutService{summaries: []domain.Summary{
		{ID: 1, Name: "Push Day"},
		{ID: 2, Name: "Leg Day"},
	}}
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/workouts?user_id=7", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, "Push Day", resp[0]["workout_name"])
	require.Equal(t, float64(1), resp[0]["workout_id"])
}

// ==== POST /workouts ====

func TestCreate_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate name", repo.ErrWorkoutNameExists, http.StatusConflict},
		{"unknown user", repo.ErrNotFound, http.StatusNotFound},
		{"empty name", workoutuc.ErrEmptyWorkoutName, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&fakeWorkoutService{createErr: tc.err})
			w := doJSON(t, r, http.MethodPost, "/workouts",
				`{"user_id":1,"workout_name":"Push Day"}`)
			require.Equal(t, tc.status, w.Code)
			require.NotEmpty(t, errorBody(t, w))
		})
	}
}

func TestCreate_Success(t *testing.T) {
	r := newRouter(&fakeWorkoutService{created: &domain.Workout{ID: 42}})

	w := doJSON(t, r, http.MethodPost, "/workouts", `{"user_id":1,"workout_name":"Push Day"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(42), resp.ID)
}

func TestCreate_MissingBodyFields(t *testing.T) {
	r := newRouter(&fakeWorkoutService{})

	w := doJSON(t, r, http.MethodPost, "/workouts", `{"workout_name":"Push Day"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// ==== GET /workouts/:workout_id ====

func TestGet_ReturnsDetails(t *testing.T) {
	perfID := int64(500)
	svc := &fakeWorkoutService{details: &domain.Details{
		WorkoutName: "Push Day",
		Exercises: []domain.ExerciseDetail{
			{
				WorkoutExerciseID: 10,
				ExerciseID:        1,
				ExerciseName:      "Bench Press",
				ExerciseOrder:     1,
				Sets: []domain.SetDetail{
					{SetID: 100, SetNumber: 1, Reps: 8, Weight: 60, PerformanceID: &perfID, IsCompleted: true},
					{SetID: 101, SetNumber: 2, Reps: 8, Weight: 60},
				},
			},
		},
	}}
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/workouts/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		WorkoutName string `json:"workout_name"`
		Exercises   []struct {
			WorkoutExerciseID int64 `json:"workout_exercise_id"`
			Sets              []struct {
				SetNumber     int    `json:"set_number"`
				PerformanceID *int64 `json:"performance_id"`
				IsCompleted   bool   `json:"is_completed"`
			} `json:"sets"`
		} `json:"exercises"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Push Day", resp.WorkoutName)
	require.Len(t, resp.Exercises, 1)
	require.Len(t, resp.Exercises[0].Sets, 2)
	require.NotNil(t, resp.Exercises[0].Sets[0].PerformanceID)
	require.True(t, resp.Exercises[0].Sets[0].IsCompleted)
	require.Nil(t, resp.Exercises[0].Sets[1].PerformanceID)
}

func TestGet_NotFound(t *testing.T) {
	r := newRouter(&fakeWorkoutService{getErr: repo.ErrNotFound})

	w := doJSON(t, r, http.MethodGet, "/workouts/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Workout not found", errorBody(t, w))
}

func TestGet_InvalidID(t *testing.T) {
	r := newRouter(&fakeWorkoutService{})

	w := doJSON(t, r, http.MethodGet, "/workouts/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// ==== POST /workouts/:workout_id/exercises ====

func TestAddExercise_Success(t *testing.T) {
	svc := &fakeWorkoutService{addedExercise: &domain.WorkoutExercise{ID: 77, ExerciseOrder: 3}}
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/workouts/1/exercises",
		`{"exercise_id":2,"setsData":[{"set_number":1,"reps":8,"weight":60}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		WorkoutExerciseID int64 `json:"workout_exercise_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(77), resp.WorkoutExerciseID)
}

func TestAddExercise_EmptySetsData(t *testing.T) {
	r := newRouter(&fakeWorkoutService{})

	w := doJSON(t, r, http.MethodPost, "/workouts/1/exercises",
		`{"exercise_id":2,"setsData":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddExercise_UnknownWorkout(t *testing.T) {
	r := newRouter(&fakeWorkoutService{addErr: repo.ErrNotFound})

	w := doJSON(t, r, http.MethodPost, "/workouts/999/exercises",
		`{"exercise_id":2,"setsData":[{"set_number":1,"reps":8,"weight":60}]}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// ==== DELETE /workouts/:workout_id/exercises/:workout_exercise_id ====

func TestRemoveExercise_Success(t *testing.T) {
	svc := &fakeWorkoutService{}
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/workouts/1/exercises/77", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, int64(77), svc.removedID)
	require.Empty(t, w.Body.Bytes())
}

func TestRemoveExercise_NotFound(t *testing.T) {
	r := newRouter(&fakeWorkoutService{removeErr: repo.ErrNotFound})

	w := doJSON(t, r, http.MethodDelete, "/workouts/1/exercises/77", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Workout exercise not found", errorBody(t, w))
}
