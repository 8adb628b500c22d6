package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionClosed возвращается операциями над закрытой сессией.
var ErrSessionClosed = errors.New("сессия закрыта")

// ErrSetNotFound возвращается, когда подход не найден в кэше сессии.
var ErrSetNotFound = errors.New("подход не найден в кэше сессии")

// setKey однозначно определяет подход внутри экрана тренировки.
type setKey struct {
	exerciseID int64
	setNumber  int
}

// Session — состояние одного экрана тренировки. Держит кэшированное
// представление тренировки и согласует его с сервером: отметки подходов
// применяются оптимистично, структурные правки (добавление и удаление
// упражнений) — только после подтверждения сервера.
//
// Все методы безопасны для вызова из нескольких горутин.
type Session struct {
	api       *API
	userID    int64
	workoutID int64

	mu sync.Mutex
	// generation растёт при каждом запуске Refresh и при Close.
	// Ответ, чей номер поколения уже не последний, отбрасывается.
	generation uint64
	closed     bool
	loading    bool
	details    *WorkoutDetails
	// pending содержит подходы с незавершённой отметкой: их оптимистичное
	// локальное состояние не должно затираться параллельным Refresh.
	pending map[setKey]bool
}

// NewSession создает сессию экрана тренировки для пользователя.
func NewSession(api *API, userID, workoutID int64) *Session {
	return &Session{
		api:       api,
		userID:    userID,
		workoutID: workoutID,
		pending:   make(map[setKey]bool),
	}
}

// Close закрывает сессию (уход с экрана). Ответы запросов, запущенных
// до закрытия, будут отброшены.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
}

// Loading сообщает, выполняется ли структурная правка.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Details возвращает копию кэшированного представления тренировки
// или nil, если данные ещё не загружены.
func (s *Session) Details() *WorkoutDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.details == nil {
		return nil
	}
	return copyDetails(s.details)
}

// Refresh загружает представление тренировки с сервера. Если к моменту
// получения ответа сессия закрыта или запущен более новый Refresh,
// ответ молча отбрасывается: это не ошибка, а устаревшие данные.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	details, err := s.api.GetWorkout(ctx, s.workoutID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		// Пришёл ответ на устаревший запрос.
		return nil
	}
	s.applyDetails(details)
	return nil
}

// ToggleSet оптимистично переключает флаг выполнения подхода и отправляет
// изменение на сервер: POST /performance при первой отметке, PUT при
// последующих. В обоих исходах (успех и ошибка) кэш в итоге сверяется
// с сервером повторной загрузкой; при ошибке это откатывает
// оптимистичное изменение.
func (s *Session) ToggleSet(ctx context.Context, exerciseID int64, setNumber int) error {
	key := setKey{exerciseID: exerciseID, setNumber: setNumber}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	set, reps, weight, ok := s.findSet(exerciseID, setNumber)
	if !ok {
		s.mu.Unlock()
		return ErrSetNotFound
	}

	target := !set.IsCompleted
	performanceID := set.PerformanceID

	// Оптимистичное изменение: интерфейс реагирует сразу,
	// сервер подтверждает асинхронно.
	set.IsCompleted = target
	s.pending[key] = target
	s.mu.Unlock()

	var err error
	if performanceID == nil {
		_, err = s.api.LogSet(ctx, LogSetInput{
			UserID:        s.userID,
			WorkoutID:     s.workoutID,
			ExerciseID:    exerciseID,
			SetNumber:     setNumber,
			WeightKG:      weight,
			RepsCompleted: reps,
			IsCompleted:   target,
		})
	} else {
		_, err = s.api.SetCompletion(ctx, *performanceID, target)
	}

	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()

	// Сервер — источник истины: после успеха подтягиваем performance_id,
	// после ошибки возвращаем авторитетное состояние вместо оптимистичного.
	// Закрытие сессии во время запроса — не ошибка: экран уже ушёл.
	if refreshErr := s.Refresh(ctx); err == nil && !errors.Is(refreshErr, ErrSessionClosed) {
		err = refreshErr
	}
	return err
}

// AddExercise добавляет упражнение с планом подходов. Правка пессимистичная:
// кэш не меняется до подтверждения сервера, на время запроса выставляется
// флаг Loading.
func (s *Session) AddExercise(ctx context.Context, exerciseID int64, sets []SetPlan) error {
	if err := s.beginStructural(); err != nil {
		return err
	}
	defer s.endStructural()

	if _, err := s.api.AddExercise(ctx, s.workoutID, exerciseID, sets); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// RemoveExercise удаляет упражнение из тренировки. Как и AddExercise,
// правка применяется к кэшу только после ответа сервера.
func (s *Session) RemoveExercise(ctx context.Context, workoutExerciseID int64) error {
	if err := s.beginStructural(); err != nil {
		return err
	}
	defer s.endStructural()

	if err := s.api.RemoveExercise(ctx, s.workoutID, workoutExerciseID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *Session) beginStructural() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.loading = true
	return nil
}

func (s *Session) endStructural() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// applyDetails записывает свежие данные сервера в кэш, сохраняя
// оптимистичные значения подходов, отметка которых ещё не подтверждена.
// Вызывается под s.mu.
func (s *Session) applyDetails(details *WorkoutDetails) {
	for i := range details.Exercises {
		ex := &details.Exercises[i]
		for j := range ex.Sets {
			key := setKey{exerciseID: ex.ExerciseID, setNumber: ex.Sets[j].SetNumber}
			if optimistic, ok := s.pending[key]; ok {
				ex.Sets[j].IsCompleted = optimistic
			}
		}
	}
	s.details = details
}

// findSet ищет подход в кэше. Вызывается под s.mu.
// Возвращает указатель на подход в кэше и его плановые reps/weight.
func (s *Session) findSet(exerciseID int64, setNumber int) (*SetDetail, int, float64, bool) {
	if s.details == nil {
		return nil, 0, 0, false
	}
	for i := range s.details.Exercises {
		ex := &s.details.Exercises[i]
		if ex.ExerciseID != exerciseID {
			continue
		}
		for j := range ex.Sets {
			if ex.Sets[j].SetNumber == setNumber {
				return &ex.Sets[j], ex.Sets[j].Reps, ex.Sets[j].Weight, true
			}
		}
	}
	return nil, 0, 0, false
}

// copyDetails делает глубокую копию представления, чтобы вызывающий
// код не мог изменить кэш сессии в обход мьютекса.
func copyDetails(d *WorkoutDetails) *WorkoutDetails {
	out := &WorkoutDetails{
		WorkoutName: d.WorkoutName,
		Exercises:   make([]ExerciseDetail, len(d.Exercises)),
	}
	for i, ex := range d.Exercises {
		copied := ex
		copied.Sets = make([]SetDetail, len(ex.Sets))
		copy(copied.Sets, ex.Sets)
		out.Exercises[i] = copied
	}
	return out
}
