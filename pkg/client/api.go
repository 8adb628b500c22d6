// Package client реализует клиентскую часть протокола синхронизации:
// HTTP-обвязку поверх API сервера и модель сессии тренировки с оптимистичными
// отметками подходов. Пакет повторяет поведение мобильного приложения и
// используется в интеграционных сценариях вместо него.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError описывает ошибку, возвращённую сервером в теле {"error": "..."}.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: статус %d: %s", e.Status, e.Message)
}

// IsNotFound сообщает, что сервер ответил 404 (суть устаревший идентификатор).
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// API — HTTP-клиент к серверу тренировок.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI создает клиент для сервера по указанному базовому адресу,
// например "http://192.168.1.10:3000".
func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SignupInput — данные регистрации.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult — результат регистрации или входа.
type AuthResult struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// Signup регистрирует пользователя и возвращает его идентификатор.
func (a *API) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	var out AuthResult
	if err := a.do(ctx, http.MethodPost, "/signup", in, &out); err != nil {
		return nil, err
	}
	out.Username = in.Username
	return &out, nil
}

// Login выполняет вход по username/паролю.
func (a *API) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	in := map[string]string{"username": username, "password": password}
	var out AuthResult
	if err := a.do(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WorkoutSummary — тренировка в списке на домашнем экране.
type WorkoutSummary struct {
	WorkoutID   int64  `json:"workout_id"`
	WorkoutName string `json:"workout_name"`
}

// ListWorkouts возвращает тренировки пользователя.
func (a *API) ListWorkouts(ctx context.Context, userID int64) ([]WorkoutSummary, error) {
	path := "/workouts?user_id=" + url.QueryEscape(strconv.FormatInt(userID, 10))
	var out []WorkoutSummary
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWorkout создает тренировку и возвращает её идентификатор.
func (a *API) CreateWorkout(ctx context.Context, userID int64, name string) (int64, error) {
	in := map[string]any{"user_id": userID, "workout_name": name}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := a.do(ctx, http.MethodPost, "/workouts", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// SetDetail — подход в представлении тренировки.
type SetDetail struct {
	SetID         int64   `json:"set_id"`
	SetNumber     int     `json:"set_number"`
	Reps          int     `json:"reps"`
	Weight        float64 `json:"weight"`
	PerformanceID *int64  `json:"performance_id"`
	IsCompleted   bool    `json:"is_completed"`
}

// ExerciseDetail — упражнение в представлении тренировки.
type ExerciseDetail struct {
	WorkoutExerciseID int64       `json:"workout_exercise_id"`
	ExerciseID        int64       `json:"exercise_id"`
	ExerciseName      string      `json:"exercise_name"`
	ExerciseOrder     int         `json:"exercise_order"`
	ImageURL          *string     `json:"image_url"`
	Sets              []SetDetail `json:"sets"`
}

// WorkoutDetails — денормализованное представление тренировки.
type WorkoutDetails struct {
	WorkoutName string           `json:"workout_name"`
	Exercises   []ExerciseDetail `json:"exercises"`
}

// GetWorkout возвращает представление тренировки со всеми упражнениями,
// подходами и привязанными результатами.
func (a *API) GetWorkout(ctx context.Context, workoutID int64) (*WorkoutDetails, error) {
	path := "/workouts/" + strconv.FormatInt(workoutID, 10)
	var out WorkoutDetails
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CatalogExercise — упражнение из справочника.
type CatalogExercise struct {
	ExerciseID   int64   `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	ImageURL     *string `json:"image_url"`
}

// ListExercises возвращает справочник упражнений.
func (a *API) ListExercises(ctx context.Context) ([]CatalogExercise, error) {
	var out []CatalogExercise
	if err := a.do(ctx, http.MethodGet, "/exercises", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetPlan — плановый подход при добавлении упражнения.
type SetPlan struct {
	SetNumber int     `json:"set_number"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
}

// AddExercise добавляет упражнение с планом подходов в конец тренировки.
func (a *API) AddExercise(ctx context.Context, workoutID, exerciseID int64, sets []SetPlan) (int64, error) {
	path := "/workouts/" + strconv.FormatInt(workoutID, 10) + "/exercises"
	in := map[string]any{"exercise_id": exerciseID, "setsData": sets}
	var out struct {
		WorkoutExerciseID int64 `json:"workout_exercise_id"`
	}
	if err := a.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return 0, err
	}
	return out.WorkoutExerciseID, nil
}

// RemoveExercise удаляет упражнение из тренировки вместе с подходами
// и историей результатов.
func (a *API) RemoveExercise(ctx context.Context, workoutID, workoutExerciseID int64) error {
	path := "/workouts/" + strconv.FormatInt(workoutID, 10) +
		"/exercises/" + strconv.FormatInt(workoutExerciseID, 10)
	return a.do(ctx, http.MethodDelete, path, nil, nil)
}

// LogSetInput — данные первой отметки подхода.
type LogSetInput struct {
	UserID        int64   `json:"user_id"`
	WorkoutID     int64   `json:"workout_id"`
	ExerciseID    int64   `json:"exercise_id"`
	SetNumber     int     `json:"set_number"`
	WeightKG      float64 `json:"weight_kg"`
	RepsCompleted int     `json:"reps_completed"`
	IsCompleted   bool    `json:"is_completed"`
}

// PerformanceResult — состояние записи результата после фиксации.
type PerformanceResult struct {
	PerformanceID int64 `json:"performance_id"`
	IsCompleted   bool  `json:"is_completed"`
}

// LogSet создает запись результата для подхода (или обновляет существующую,
// если сервер уже знает такую комбинацию пользователь/тренировка/упражнение/подход).
func (a *API) LogSet(ctx context.Context, in LogSetInput) (*PerformanceResult, error) {
	var out PerformanceResult
	if err := a.do(ctx, http.MethodPost, "/performance", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCompletion переключает флаг выполнения существующей записи результата.
func (a *API) SetCompletion(ctx context.Context, performanceID int64, isCompleted bool) (bool, error) {
	path := "/performance/" + strconv.FormatInt(performanceID, 10)
	in := map[string]any{"is_completed": isCompleted}
	var out struct {
		IsCompleted bool `json:"is_completed"`
	}
	if err := a.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return false, err
	}
	return out.IsCompleted, nil
}

// do выполняет запрос и декодирует ответ. Тела ошибок сервера имеют вид
// {"error": "..."} и превращаются в *APIError.
func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("ошибка кодирования тела запроса: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		message := resp.Status
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ошибка декодирования ответа: %w", err)
	}
	return nil
}
