package performance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domain "workout-buddy/internal/domain/performance"
	perfhandler "workout-buddy/internal/handler/performance"
	repo "workout-buddy/internal/repository/interfaces"
	perfuc "workout-buddy/internal/usecase/performance"
)

// fakePerformanceService реализует perfuc.Service с управляемыми ответами.
type fakePerformanceService struct {
	logResult *domain.Record
	logErr    error
	setResult *domain.Record
	setErr    error

	gotInput perfuc.LogSetInput
	gotID    int64
	gotFlag  bool
}

func (f *fakePerformanceService) LogSet(_ context.Context, in perfuc.LogSetInput) (*domain.Record, error) {
	f.gotInput = in
	if f.logErr != nil {
		return nil, f.logErr
	}
	return f.logResult, nil
}

func (f *fakePerformanceService) SetCompletion(_ context.Context, id int64, isCompleted bool) (*domain.Record, error) {
	f.gotID = id
	f.gotFlag = isCompleted
	if f.setErr != nil {
		return nil, f.setErr
	}
	return f.setResult, nil
}

func newRouter(svc perfuc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := perfhandler.NewHandler(svc)
	r.POST("/performance", h.LogSet)
	r.PUT("/performance/:performance_id", h.SetCompletion)
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

func TestLogSet_Success(t *testing.T) {
	svc := &fakePerformanceService{logResult: &domain.Record{ID: 500, IsCompleted: true}}
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/performance",
		`{"user_id":1,"workout_id":2,"exercise_id":3,"set_number":1,"weight_kg":60,"reps_completed":8,"is_completed":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		PerformanceID int64 `json:"performance_id"`
		IsCompleted   bool  `json:"is_completed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(500), resp.PerformanceID)
	require.True(t, resp.IsCompleted)

	require.Equal(t, int64(1), svc.gotInput.UserID)
	require.Equal(t, 1, svc.gotInput.SetNumber)
	require.Equal(t, 60.0, svc.gotInput.WeightKG)
}

func TestLogSet_MissingKeyFields(t *testing.T) {
	r := newRouter(&fakePerformanceService{})

	w := doJSON(t, r, http.MethodPost, "/performance",
		`{"user_id":1,"workout_id":2,"is_completed":true}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["error"])
}

func TestSetCompletion_Success(t *testing.T) {
	svc := &fakePerformanceService{setResult: &domain.Record{ID: 500, IsCompleted: false}}
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/performance/500", `{"is_completed":false}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		IsCompleted bool `json:"is_completed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.IsCompleted)

	require.Equal(t, int64(500), svc.gotID)
	require.False(t, svc.gotFlag)
}

func TestSetCompletion_ExplicitFalseAccepted(t *testing.T) {
	// false — валидное значение, а не отсутствующее поле.
	svc := &fakePerformanceService{setResult: &domain.Record{ID: 500}}
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/performance/500", `{"is_completed":false}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSetCompletion_MissingFlag(t *testing.T) {
	r := newRouter(&fakePerformanceService{})

	w := doJSON(t, r, http.MethodPut, "/performance/500", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetCompletion_StaleID(t *testing.T) {
	r := newRouter(&fakePerformanceService{setErr: repo.ErrNotFound})

	w := doJSON(t, r, http.MethodPut, "/performance/999", `{"is_completed":true}`)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Performance record not found", resp["error"])
}

func TestSetCompletion_InvalidID(t *testing.T) {
	r := newRouter(&fakePerformanceService{})

	w := doJSON(t, r, http.MethodPut, "/performance/abc", `{"is_completed":true}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
