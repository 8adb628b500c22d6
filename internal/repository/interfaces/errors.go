package interfaces

import "errors"

// ErrNotFound возвращается, когда сущность не найдена в хранилище
// (в том числе когда нарушен внешний ключ на отсутствующую сущность).
var ErrNotFound = errors.New("entity not found")

// ErrEmailExists возвращается, когда пользователь с таким email уже существует.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists возвращается, когда пользователь с таким username уже существует.
var ErrUsernameExists = errors.New("username already exists")

// ErrWorkoutNameExists возвращается, когда у пользователя уже есть тренировка
// с таким названием (уникальность имени в пределах пользователя).
var ErrWorkoutNameExists = errors.New("workout name already exists for this user")
