package user

import (
	"context"
	"errors"

	domain "workout-buddy/internal/domain/user"
	repo "workout-buddy/internal/repository/interfaces"
)

// ErrMissingFields возвращается, когда при регистрации не заполнены обязательные поля.
var ErrMissingFields = errors.New("username, email and password hash are required")

// Service описывает usecase-слой работы с пользователями: регистрацию и
// поиск по учётным данным. Проверка пароля и его хеширование выполняются
// выше, на уровне хендлера.
type Service interface {
	// Register регистрирует нового пользователя.
	// Возвращает созданного пользователя (с назначенным ID) или ошибку,
	// включая ErrUsernameExists/ErrEmailExists.
	Register(ctx context.Context, username, email, passwordHash string) (*domain.User, error)

	// GetByUsername возвращает пользователя по username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByID возвращает пользователя по идентификатору.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type service struct {
	users repo.UserRepository
}

// NewService создаёт новый сервис пользователей.
func NewService(users repo.UserRepository) Service {
	return &service{users: users}
}

// Register регистрирует нового пользователя.
func (s *service) Register(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	if username == "" || email == "" || passwordHash == "" {
		return nil, ErrMissingFields
	}

	user := domain.NewUser(username, email, passwordHash)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByUsername возвращает пользователя по username.
func (s *service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// GetByID возвращает пользователя по ID.
func (s *service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
