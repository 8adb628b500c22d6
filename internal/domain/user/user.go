package user

import "time"

// User представляет доменную модель пользователя приложения.
//
// Идентификатор числовой и назначается сервером (BIGSERIAL в БД): мобильный
// клиент сохраняет его в локальном хранилище между сессиями. Поля идентичности
// (username, email) неизменяемы после регистрации.
type User struct {
	ID           int64     // Уникальный идентификатор пользователя
	Username     string    // Никнейм (уникальный логин)
	Email        string    // Email (уникальный)
	PasswordHash string    // Хэш пароля, наружу не отдаётся
	CreatedAt    time.Time // Время регистрации
}

// NewUser — фабрика для создания нового пользователя на доменном уровне.
// Пароль должен быть захеширован до вызова этой функции;
// ID назначается хранилищем при вставке.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
