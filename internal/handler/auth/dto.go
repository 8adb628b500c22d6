package auth

// SignupRequest описывает тело запроса регистрации пользователя.
// Контракт намеренно минимальный: только данные, необходимые для входа.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignupResponse — ответ при успешной регистрации.
type SignupResponse struct {
	UserID int64 `json:"userId"`
}

// LoginRequest описывает тело запроса логина по username/паролю.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse — ответ при успешной аутентификации. Клиент сохраняет
// userId в локальном хранилище и дальше ходит с ним как с идентификатором сессии.
type LoginResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
