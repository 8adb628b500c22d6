//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"workout-buddy/internal/config"
	"workout-buddy/internal/database"
	perfdomain "workout-buddy/internal/domain/performance"
	userdomain "workout-buddy/internal/domain/user"
	domain "workout-buddy/internal/domain/workout"
	repo "workout-buddy/internal/repository/interfaces"
	pgrepo "workout-buddy/internal/repository/postgres"
)

// setupDB подключается к базе из окружения и применяет миграции.
// Запуск: go test -tags integration ./internal/repository/postgres/...
func setupDB(t *testing.T) *database.DB {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator, err := database.NewMigrator(db)
	require.NoError(t, err)
	if err := migrator.Up(); err != nil && !errors.Is(err, database.ErrNoChange) {
		t.Fatalf("миграции не применились: %v", err)
	}

	return db
}

// seedUserAndWorkout создает пользователя с уникальными учётными данными
// и пустую тренировку для него.
func seedUserAndWorkout(t *testing.T, db *database.DB) (int64, int64) {
	t.Helper()

	suffix := uuid.NewString()[:8]
	users := pgrepo.NewUserRepository(db.DB)
	u := userdomain.NewUser("it_"+suffix, "it_"+suffix+"@example.com", "hash")
	require.NoError(t, users.Create(context.Background(), u))

	workouts := pgrepo.NewWorkoutRepository(db.DB)
	w := domain.NewWorkout(u.ID, "Integration "+suffix)
	require.NoError(t, workouts.Create(context.Background(), w))

	return u.ID, w.ID
}

// firstExerciseID возвращает идентификатор любого упражнения из каталога.
func firstExerciseID(t *testing.T, db *database.DB) int64 {
	t.Helper()
	exercises := pgrepo.NewExerciseRepository(db.DB)
	catalog, err := exercises.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, catalog, "каталог упражнений должен быть засеян миграциями")
	return catalog[0].ID
}

func TestAddExercise_ConcurrentCallsGetDistinctOrders(t *testing.T) {
	db := setupDB(t)
	_, workoutID := seedUserAndWorkout(t, db)
	exerciseID := firstExerciseID(t, db)

	workouts := pgrepo.NewWorkoutRepository(db.DB)
	plans := []domain.SetPlan{{Reps: 8, Weight: 60}}

	const workers = 8
	results := make([]*domain.WorkoutExercise, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = workouts.AddExercise(context.Background(), workoutID, exerciseID, plans)
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.False(t, seen[results[i].ExerciseOrder],
			"порядок %d выдан дважды", results[i].ExerciseOrder)
		seen[results[i].ExerciseOrder] = true
	}

	// Без конкурентных потерь порядки образуют плотную последовательность 1..N.
	for order := 1; order <= workers; order++ {
		require.True(t, seen[order], "пропущен порядок %d", order)
	}
}

func TestRemoveExercise_CascadesPerformanceAndSets(t *testing.T) {
	db := setupDB(t)
	userID, workoutID := seedUserAndWorkout(t, db)
	exerciseID := firstExerciseID(t, db)

	workouts := pgrepo.NewWorkoutRepository(db.DB)
	records := pgrepo.NewPerformanceRepository(db.DB)

	we, err := workouts.AddExercise(context.Background(), workoutID, exerciseID,
		[]domain.SetPlan{{Reps: 8, Weight: 60}, {Reps: 8, Weight: 60}})
	require.NoError(t, err)

	key := perfdomain.Key{
		UserID:     userID,
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		SetNumber:  1,
	}
	rec := perfdomain.NewRecord(key, 60, 8, true)
	require.NoError(t, records.Create(context.Background(), rec))

	require.NoError(t, workouts.RemoveExercise(context.Background(), we.ID))

	// Повторное удаление — ErrNotFound, а не тихий успех.
	require.ErrorIs(t, workouts.RemoveExercise(context.Background(), we.ID), repo.ErrNotFound)

	// История результатов удалена вместе с упражнением.
	_, err = records.GetByKey(context.Background(), key)
	require.ErrorIs(t, err, repo.ErrNotFound)

	// Представление тренировки снова пустое.
	rows, err := workouts.FetchDetailRows(context.Background(), workoutID)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestUpdateCompletion_PreservesDatePerformed(t *testing.T) {
	db := setupDB(t)
	userID, workoutID := seedUserAndWorkout(t, db)
	exerciseID := firstExerciseID(t, db)

	records := pgrepo.NewPerformanceRepository(db.DB)
	key := perfdomain.Key{
		UserID:     userID,
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		SetNumber:  1,
	}
	rec := perfdomain.NewRecord(key, 60, 8, true)
	require.NoError(t, records.Create(context.Background(), rec))

	require.NoError(t, records.UpdateCompletion(context.Background(), rec.ID, false))

	after, err := records.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	require.False(t, after.IsCompleted)
	// timestamptz хранит микросекунды, наносекунды Go теряются при записи.
	require.WithinDuration(t, rec.DatePerformed, after.DatePerformed, time.Millisecond)
}

func TestWorkoutCreate_DuplicateNamePerUser(t *testing.T) {
	db := setupDB(t)
	userID, _ := seedUserAndWorkout(t, db)

	workouts := pgrepo.NewWorkoutRepository(db.DB)
	w := domain.NewWorkout(userID, "Duplicate Check")
	require.NoError(t, workouts.Create(context.Background(), w))

	dup := domain.NewWorkout(userID, "Duplicate Check")
	require.ErrorIs(t, workouts.Create(context.Background(), dup), repo.ErrWorkoutNameExists)
}
