package exercise

// Exercise представляет упражнение из общего каталога.
//
// Справочные данные: не принадлежат ни одному пользователю и разделяются
// всеми тренировками. ImageURL — имя файла картинки, которую клиент
// достраивает до полного URL сам.
type Exercise struct {
	ID       int64   // Идентификатор упражнения
	Name     string  // Отображаемое название
	ImageURL *string // Имя файла изображения (опционально)
}
