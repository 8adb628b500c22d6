package performance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "workout-buddy/internal/domain/performance"
	repo "workout-buddy/internal/repository/interfaces"
	perfuc "workout-buddy/internal/usecase/performance"
)

// fakePerformanceRepo хранит записи в памяти и поддерживает инвариант
// «не более одной записи на составной ключ» на уровне структуры данных.
type fakePerformanceRepo struct {
	nextID  int64
	byID    map[int64]*domain.Record
	byKey   map[domain.Key]int64
	creates int
	updates int
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{
		nextID: 1,
		byID:   map[int64]*domain.Record{},
		byKey:  map[domain.Key]int64{},
	}
}

func (r *fakePerformanceRepo) Create(_ context.Context, rec *domain.Record) error {
	rec.ID = r.nextID
	r.nextID++
	copied := *rec
	r.byID[rec.ID] = &copied
	r.byKey[rec.Key()] = rec.ID
	r.creates++
	return nil
}

func (r *fakePerformanceRepo) GetByID(_ context.Context, id int64) (*domain.Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *fakePerformanceRepo) GetByKey(_ context.Context, key domain.Key) (*domain.Record, error) {
	id, ok := r.byKey[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.GetByID(context.Background(), id)
}

func (r *fakePerformanceRepo) UpdateCompletion(_ context.Context, id int64, isCompleted bool) error {
	rec, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	rec.IsCompleted = isCompleted
	r.updates++
	return nil
}

func input(completed bool) perfuc.LogSetInput {
	return perfuc.LogSetInput{
		UserID:        1,
		WorkoutID:     2,
		ExerciseID:    3,
		SetNumber:     1,
		WeightKG:      60,
		RepsCompleted: 8,
		IsCompleted:   completed,
	}
}

func TestLogSet_FirstMarkCreatesRecord(t *testing.T) {
	fake := newFakePerformanceRepo()
	svc := perfuc.NewService(fake)

	rec, err := svc.LogSet(context.Background(), input(true))
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ID)
	require.True(t, rec.IsCompleted)
	require.False(t, rec.DatePerformed.IsZero())
	require.Equal(t, 1, fake.creates)
	require.Equal(t, 0, fake.updates)
}

func TestLogSet_RepeatedTogglesKeepOneRecord(t *testing.T) {
	fake := newFakePerformanceRepo()
	svc := perfuc.NewService(fake)

	completed := true
	for i := 0; i < 5; i++ {
		rec, err := svc.LogSet(context.Background(), input(completed))
		require.NoError(t, err)
		require.Equal(t, completed, rec.IsCompleted)
		completed = !completed
	}

	// После любого числа переключений запись ровно одна.
	require.Len(t, fake.byID, 1)
	require.Equal(t, 1, fake.creates)
	require.Equal(t, 4, fake.updates)
}

func TestLogSet_DatePerformedStableAcrossToggles(t *testing.T) {
	fake := newFakePerformanceRepo()
	svc := perfuc.NewService(fake)

	first, err := svc.LogSet(context.Background(), input(true))
	require.NoError(t, err)
	firstDate := first.DatePerformed

	after, err := svc.LogSet(context.Background(), input(false))
	require.NoError(t, err)
	require.Equal(t, firstDate, after.DatePerformed)
}

func TestLogSet_DistinctKeysGetDistinctRecords(t *testing.T) {
	fake := newFakePerformanceRepo()
	svc := perfuc.NewService(fake)

	a := input(true)
	b := input(true)
	b.SetNumber = 2

	recA, err := svc.LogSet(context.Background(), a)
	require.NoError(t, err)
	recB, err := svc.LogSet(context.Background(), b)
	require.NoError(t, err)

	require.NotEqual(t, recA.ID, recB.ID)
	require.Len(t, fake.byID, 2)
}

func TestLogSet_IncompleteKey(t *testing.T) {
	svc := perfuc.NewService(newFakePerformanceRepo())

	bad := input(true)
	bad.SetNumber = 0
	_, err := svc.LogSet(context.Background(), bad)
	require.ErrorIs(t, err, perfuc.ErrMissingKey)

	bad = input(true)
	bad.WorkoutID = 0
	_, err = svc.LogSet(context.Background(), bad)
	require.ErrorIs(t, err, perfuc.ErrMissingKey)
}

func TestSetCompletion_TogglesFlag(t *testing.T) {
	fake := newFakePerformanceRepo()
	svc := perfuc.NewService(fake)

	created, err := svc.LogSet(context.Background(), input(true))
	require.NoError(t, err)

	rec, err := svc.SetCompletion(context.Background(), created.ID, false)
	require.NoError(t, err)
	require.False(t, rec.IsCompleted)

	stored, err := fake.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.False(t, stored.IsCompleted)
}

func TestSetCompletion_StaleID(t *testing.T) {
	svc := perfuc.NewService(newFakePerformanceRepo())

	_, err := svc.SetCompletion(context.Background(), 999, true)
	require.ErrorIs(t, err, repo.ErrNotFound)
}
