package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domain "workout-buddy/internal/domain/user"
	authhandler "workout-buddy/internal/handler/auth"
	repo "workout-buddy/internal/repository/interfaces"
	"workout-buddy/pkg/password"
)

// fakeUserService реализует useruc.Service поверх map'ы в памяти.
type fakeUserService struct {
	nextID     int64
	byUsername map[string]*domain.User
	emails     map[string]bool
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{
		nextID:     1,
		byUsername: map[string]*domain.User{},
		emails:     map[string]bool{},
	}
}

func (s *fakeUserService) Register(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
	if _, ok := s.byUsername[username]; ok {
		return nil, repo.ErrUsernameExists
	}
	if s.emails[email] {
		return nil, repo.ErrEmailExists
	}
	u := domain.NewUser(username, email, passwordHash)
	u.ID = s.nextID
	s.nextID++
	s.byUsername[username] = u
	s.emails[email] = true
	return u, nil
}

func (s *fakeUserService) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserService) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range s.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func newRouter(users *fakeUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := authhandler.NewHandler(users)
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
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

func TestSignup_Success(t *testing.T) {
	r := newRouter(newFakeUserService())

	w := doJSON(t, r, http.MethodPost, "/signup",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		UserID int64 `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.UserID)
}

func TestSignup_ValidationFailure(t *testing.T) {
	r := newRouter(newFakeUserService())

	// Слишком короткий пароль.
	w := doJSON(t, r, http.MethodPost, "/signup",
		`{"username":"alice","email":"alice@example.com","password":"abc"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["error"])
}

func TestSignup_UsernameConflict(t *testing.T) {
	users := newFakeUserService()
	r := newRouter(users)

	first := doJSON(t, r, http.MethodPost, "/signup",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, r, http.MethodPost, "/signup",
		`{"username":"alice","email":"other@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusConflict, second.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	require.Equal(t, "Username is already taken", resp["error"])
}

func TestSignup_EmailConflict(t *testing.T) {
	users := newFakeUserService()
	r := newRouter(users)

	first := doJSON(t, r, http.MethodPost, "/signup",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, r, http.MethodPost, "/signup",
		`{"username":"bob","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusConflict, second.Code)
}

func TestLogin_Success(t *testing.T) {
	users := newFakeUserService()
	hash, err := password.Hash("secret1")
	require.NoError(t, err)
	_, err = users.Register(context.Background(), "alice", "alice@example.com", hash)
	require.NoError(t, err)

	r := newRouter(users)
	w := doJSON(t, r, http.MethodPost, "/login", `{"username":"alice","password":"secret1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		UserID   int64  `json:"userId"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.UserID)
	require.Equal(t, "alice", resp.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserService()
	hash, err := password.Hash("secret1")
	require.NoError(t, err)
	_, err = users.Register(context.Background(), "alice", "alice@example.com", hash)
	require.NoError(t, err)

	r := newRouter(users)
	w := doJSON(t, r, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Invalid username or password", resp["error"])
}

func TestLogin_UnknownUser(t *testing.T) {
	r := newRouter(newFakeUserService())

	w := doJSON(t, r, http.MethodPost, "/login", `{"username":"ghost","password":"secret1"}`)

	// Тот же ответ, что и при неверном пароле: не раскрываем, что именно неверно.
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Invalid username or password", resp["error"])
}
