package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "workout-buddy/internal/domain/workout"
	repo "workout-buddy/internal/repository/interfaces"
)

// pgWorkout представляет собой ORM-модель для таблицы workouts.
type pgWorkout struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (pgWorkout) TableName() string {
	return "workouts"
}

// pgWorkoutExercise представляет собой ORM-модель для таблицы workout_exercises.
type pgWorkoutExercise struct {
	ID            int64 `gorm:"column:id;primaryKey;autoIncrement"`
	WorkoutID     int64 `gorm:"column:workout_id;not null"`
	ExerciseID    int64 `gorm:"column:exercise_id;not null"`
	ExerciseOrder int   `gorm:"column:exercise_order;not null"`
	DefaultSets   int   `gorm:"column:default_sets;not null"`
	DefaultReps   int   `gorm:"column:default_reps;not null"`
}

func (pgWorkoutExercise) TableName() string {
	return "workout_exercises"
}

// pgWorkoutExerciseSet представляет собой ORM-модель для таблицы workout_exercise_sets.
type pgWorkoutExerciseSet struct {
	ID                int64   `gorm:"column:id;primaryKey;autoIncrement"`
	WorkoutExerciseID int64   `gorm:"column:workout_exercise_id;not null"`
	SetNumber         int     `gorm:"column:set_number;not null"`
	TargetReps        int     `gorm:"column:target_reps;not null"`
	TargetWeight      float64 `gorm:"column:target_weight;not null"`
}

func (pgWorkoutExerciseSet) TableName() string {
	return "workout_exercise_sets"
}

// pgDetailRow — строка внешнего соединения для представления тренировки.
type pgDetailRow struct {
	WorkoutName       string   `gorm:"column:workout_name"`
	WorkoutExerciseID int64    `gorm:"column:workout_exercise_id"`
	ExerciseID        int64    `gorm:"column:exercise_id"`
	ExerciseName      string   `gorm:"column:exercise_name"`
	ExerciseOrder     int      `gorm:"column:exercise_order"`
	ImageURL          *string  `gorm:"column:image_url"`
	SetID             *int64   `gorm:"column:set_id"`
	SetNumber         *int     `gorm:"column:set_number"`
	TargetReps        *int     `gorm:"column:target_reps"`
	TargetWeight      *float64 `gorm:"column:target_weight"`
	PerformanceID     *int64   `gorm:"column:performance_id"`
	IsCompleted       *bool    `gorm:"column:is_completed"`
}

// detailRowsQuery — единственный запрос представления тренировки.
//
// Результаты (performance_data) присоединяются по составному ключу
// (workout_id, exercise_id, set_number) через LEFT JOIN: записи результата
// может ещё не быть. ORDER BY здесь обязателен — группировка выше по стеку
// опирается на порядок первого вхождения строк, а не сортирует сама.
const detailRowsQuery = `
SELECT w.name            AS workout_name,
       we.id             AS workout_exercise_id,
       e.id              AS exercise_id,
       e.name            AS exercise_name,
       we.exercise_order AS exercise_order,
       e.image_url       AS image_url,
       s.id              AS set_id,
       s.set_number      AS set_number,
       s.target_reps     AS target_reps,
       s.target_weight   AS target_weight,
       p.id              AS performance_id,
       p.is_completed    AS is_completed
FROM workouts w
JOIN workout_exercises we ON we.workout_id = w.id
JOIN exercises e          ON e.id = we.exercise_id
LEFT JOIN workout_exercise_sets s ON s.workout_exercise_id = we.id
LEFT JOIN performance_data p
       ON p.workout_id  = we.workout_id
      AND p.exercise_id = we.exercise_id
      AND p.set_number  = s.set_number
WHERE w.id = ?
ORDER BY we.exercise_order ASC, s.set_number ASC`

// WorkoutRepository реализует repo.WorkoutRepository с использованием GORM и Postgres.
type WorkoutRepository struct {
	db *gorm.DB
}

var _ repo.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository создает новый репозиторий тренировок.
func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create создает тренировку и записывает назначенный ID в доменную модель.
func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	model := &pgWorkout{
		UserID:    w.UserID,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
	}
	err := r.db.WithContext(ctx).Create(model).Error
	if err != nil {
		// Нарушение уникальности (user_id, name) — у пользователя уже есть
		// тренировка с таким названием.
		if isUniqueViolation(err, "idx_workouts_user_name_unique") || strings.Contains(err.Error(), "idx_workouts_user_name_unique") {
			return repo.ErrWorkoutNameExists
		}
		// Нарушение внешнего ключа — пользователь не существует.
		if isForeignKeyViolation(err) {
			return repo.ErrNotFound
		}
		return err
	}

	w.ID = model.ID
	return nil
}

// GetByID возвращает тренировку по идентификатору.
func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	var model pgWorkout
	err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.Workout{
		ID:        model.ID,
		UserID:    model.UserID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}, nil
}

// ListByUser возвращает тренировки пользователя в порядке создания.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Summary, error) {
	var models []pgWorkout
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.Summary, 0, len(models))
	for i := range models {
		summaries = append(summaries, domain.Summary{
			ID:   models[i].ID,
			Name: models[i].Name,
		})
	}
	return summaries, nil
}

// AddExercise добавляет упражнение с планом подходов в хвост тренировки.
//
// Вся операция — одна транзакция: блокирующее чтение строки тренировки,
// вычисление next_order, вставка workout_exercise и пакетная вставка подходов.
// SELECT ... FOR UPDATE на строке тренировки сериализует конкурентные
// добавления в одну и ту же тренировку: второй вызов ждёт коммита первого и
// видит уже обновлённый максимум exercise_order.
func (r *WorkoutRepository) AddExercise(ctx context.Context, workoutID, exerciseID int64, plans []domain.SetPlan) (*domain.WorkoutExercise, error) {
	var created pgWorkoutExercise

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Блокируем строку тренировки до конца транзакции.
		var w pgWorkout
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&w, "id = ?", workoutID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return err
		}

		// next_order = 1 + max(существующий exercise_order), 0 если упражнений нет.
		var maxOrder int
		err = tx.Model(&pgWorkoutExercise{}).
			Where("workout_id = ?", workoutID).
			Select("COALESCE(MAX(exercise_order), 0)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		created = pgWorkoutExercise{
			WorkoutID:     workoutID,
			ExerciseID:    exerciseID,
			ExerciseOrder: maxOrder + 1,
			DefaultSets:   len(plans),
			DefaultReps:   plans[0].Reps,
		}
		if err := tx.Create(&created).Error; err != nil {
			// Нарушение внешнего ключа — упражнения нет в каталоге.
			if isForeignKeyViolation(err) {
				return repo.ErrNotFound
			}
			return err
		}

		sets := make([]pgWorkoutExerciseSet, 0, len(plans))
		for i, plan := range plans {
			sets = append(sets, pgWorkoutExerciseSet{
				WorkoutExerciseID: created.ID,
				SetNumber:         i + 1,
				TargetReps:        plan.Reps,
				TargetWeight:      plan.Weight,
			})
		}
		return tx.Create(&sets).Error
	})
	if err != nil {
		return nil, err
	}

	return &domain.WorkoutExercise{
		ID:            created.ID,
		WorkoutID:     created.WorkoutID,
		ExerciseID:    created.ExerciseID,
		ExerciseOrder: created.ExerciseOrder,
		DefaultSets:   created.DefaultSets,
		DefaultReps:   created.DefaultReps,
	}, nil
}

// RemoveExercise удаляет упражнение из тренировки с каскадной очисткой.
//
// Порядок удаления в транзакции: результаты по составному ключу
// (workout_id, exercise_id), затем плановые подходы, затем сама запись —
// дети раньше родителя. Оставшиеся упражнения не перенумеровываются,
// пропуски в exercise_order допустимы.
func (r *WorkoutRepository) RemoveExercise(ctx context.Context, workoutExerciseID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var we pgWorkoutExercise
		err := tx.Take(&we, "id = ?", workoutExerciseID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Повторное удаление — ошибка, а не тихий успех.
			return repo.ErrNotFound
		}
		if err != nil {
			return err
		}

		// Каскадная очистка истории результатов удаляемого плана.
		err = tx.Where("workout_id = ? AND exercise_id = ?", we.WorkoutID, we.ExerciseID).
			Delete(&pgPerformance{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("workout_exercise_id = ?", we.ID).
			Delete(&pgWorkoutExerciseSet{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&pgWorkoutExercise{}, we.ID).Error
	})
}

// FetchDetailRows возвращает плоские строки соединения для представления тренировки.
func (r *WorkoutRepository) FetchDetailRows(ctx context.Context, workoutID int64) ([]domain.DetailRow, error) {
	var models []pgDetailRow
	err := r.db.WithContext(ctx).Raw(detailRowsQuery, workoutID).Scan(&models).Error
	if err != nil {
		return nil, err
	}

	rows := make([]domain.DetailRow, 0, len(models))
	for i := range models {
		m := &models[i]
		rows = append(rows, domain.DetailRow{
			WorkoutName:       m.WorkoutName,
			WorkoutExerciseID: m.WorkoutExerciseID,
			ExerciseID:        m.ExerciseID,
			ExerciseName:      m.ExerciseName,
			ExerciseOrder:     m.ExerciseOrder,
			ImageURL:          m.ImageURL,
			SetID:             m.SetID,
			SetNumber:         m.SetNumber,
			TargetReps:        m.TargetReps,
			TargetWeight:      m.TargetWeight,
			PerformanceID:     m.PerformanceID,
			IsCompleted:       m.IsCompleted,
		})
	}
	return rows, nil
}
