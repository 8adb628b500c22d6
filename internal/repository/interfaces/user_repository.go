package interfaces

import (
	"context"

	domain "workout-buddy/internal/domain/user"
)

// UserRepository определяет контракт для работы с пользователями на уровне хранилища.
//
// Интерфейс оперирует доменной моделью User и не раскрывает деталей реализации (GORM, SQL и т.п.).
type UserRepository interface {
	// Create создает нового пользователя и записывает назначенный ID в переданную модель.
	// Возвращает ErrUsernameExists, если username уже используется.
	// Возвращает ErrEmailExists, если email уже используется.
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по идентификатору.
	// Возвращает (nil, ErrNotFound), если пользователь не найден.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername возвращает пользователя по username.
	// Возвращает (nil, ErrNotFound), если пользователь не найден.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
