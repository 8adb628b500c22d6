package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"workout-buddy/internal/handler/response"
	repo "workout-buddy/internal/repository/interfaces"
	useruc "workout-buddy/internal/usecase/user"
	"workout-buddy/pkg/password"
)

// Handler обрабатывает HTTP-запросы, связанные с регистрацией и входом.
type Handler struct {
	users useruc.Service
}

// NewHandler создаёт новый AuthHandler.
func NewHandler(users useruc.Service) *Handler {
	return &Handler{users: users}
}

// Signup обрабатывает регистрацию пользователя.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	// Хешируем пароль
	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Printf("error hashing password in Signup: username=%s err=%v", req.Username, err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, hash)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrUsernameExists):
			log.Printf("username conflict in Signup: username=%s", req.Username)
			response.Error(c, http.StatusConflict, "Username is already taken")
		case errors.Is(err, repo.ErrEmailExists):
			log.Printf("email conflict in Signup: email=%s", req.Email)
			response.Error(c, http.StatusConflict, "Email is already registered")
		default:
			log.Printf("internal error in Signup: username=%s err=%v", req.Username, err)
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, SignupResponse{UserID: user.ID})
}

// Login обрабатывает вход пользователя по username/паролю.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Не раскрываем, что именно неверно
			response.Error(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("internal error in Login (GetByUsername): username=%s err=%v", req.Username, err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Проверяем пароль
	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}
