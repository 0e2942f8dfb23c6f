package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitlog/workout-app/internal/domain"
	"fitlog/workout-app/internal/repository"
)

// fakeWorkoutRepo is an in-memory stand-in for the Postgres repository. It
// mirrors the real ownership contract: any lookup of a row that exists but
// belongs to a different owner returns ErrNotFound.
type fakeWorkoutRepo struct {
	nextID    uint
	workouts  map[uint]*domain.Workout
	exercises map[uint]*domain.WorkoutExercise
	sets      map[uint]*domain.Set
	rows      []domain.WorkoutRow

	lastFrom, lastTo domain.CalDate
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{
		workouts:  map[uint]*domain.Workout{},
		exercises: map[uint]*domain.WorkoutExercise{},
		sets:      map[uint]*domain.Set{},
	}
}

func (m *fakeWorkoutRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) error {
	w.ID = m.id()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	cp := *w
	m.workouts[w.ID] = &cp
	return nil
}

func (m *fakeWorkoutRepo) GetByID(_ context.Context, owner string, id uint) (*domain.Workout, error) {
	w, ok := m.workouts[id]
	if !ok || w.OwnerUserID != owner {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *fakeWorkoutRepo) GetByDate(_ context.Context, owner string, date domain.CalDate) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range m.workouts {
		if w.OwnerUserID == owner && w.Date == date {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *fakeWorkoutRepo) GetRows(_ context.Context, workoutIDs []uint) ([]domain.WorkoutRow, error) {
	var out []domain.WorkoutRow
	for _, row := range m.rows {
		for _, id := range workoutIDs {
			if row.WorkoutID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (m *fakeWorkoutRepo) DatesInRange(_ context.Context, owner string, from, to domain.CalDate) ([]domain.CalDate, error) {
	m.lastFrom, m.lastTo = from, to
	seen := map[domain.CalDate]bool{}
	var out []domain.CalDate
	for _, w := range m.workouts {
		d := w.Date
		if w.OwnerUserID != owner || d.Before(from) || to.Before(d) || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (m *fakeWorkoutRepo) Update(_ context.Context, owner string, w *domain.Workout) error {
	existing, ok := m.workouts[w.ID]
	if !ok || existing.OwnerUserID != owner {
		return repository.ErrNotFound
	}
	cp := *w
	cp.OwnerUserID = existing.OwnerUserID
	m.workouts[w.ID] = &cp
	return nil
}

func (m *fakeWorkoutRepo) Delete(_ context.Context, owner string, id uint) (*domain.Workout, error) {
	w, ok := m.workouts[id]
	if !ok || w.OwnerUserID != owner {
		return nil, repository.ErrNotFound
	}
	for weID, we := range m.exercises {
		if we.WorkoutID != id {
			continue
		}
		for setID, set := range m.sets {
			if set.WorkoutExerciseID == weID {
				delete(m.sets, setID)
			}
		}
		delete(m.exercises, weID)
	}
	delete(m.workouts, id)
	return w, nil
}

func (m *fakeWorkoutRepo) AddExercise(_ context.Context, owner string, we *domain.WorkoutExercise) error {
	w, ok := m.workouts[we.WorkoutID]
	if !ok || w.OwnerUserID != owner {
		return repository.ErrNotFound
	}
	for _, existing := range m.exercises {
		if existing.WorkoutID == we.WorkoutID && existing.ExerciseID == we.ExerciseID {
			return repository.ErrDuplicate
		}
	}
	we.ID = m.id()
	cp := *we
	m.exercises[we.ID] = &cp
	return nil
}

func (m *fakeWorkoutRepo) GetWorkoutExercise(_ context.Context, owner string, id uint) (*domain.WorkoutExercise, error) {
	we, ok := m.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if w, ok := m.workouts[we.WorkoutID]; !ok || w.OwnerUserID != owner {
		return nil, repository.ErrNotFound
	}
	cp := *we
	return &cp, nil
}

func (m *fakeWorkoutRepo) RemoveExercise(ctx context.Context, owner string, id uint) error {
	if _, err := m.GetWorkoutExercise(ctx, owner, id); err != nil {
		return err
	}
	for setID, set := range m.sets {
		if set.WorkoutExerciseID == id {
			delete(m.sets, setID)
		}
	}
	delete(m.exercises, id)
	return nil
}

func (m *fakeWorkoutRepo) AddSet(ctx context.Context, owner string, set *domain.Set) error {
	if _, err := m.GetWorkoutExercise(ctx, owner, set.WorkoutExerciseID); err != nil {
		return err
	}
	set.ID = m.id()
	cp := *set
	m.sets[set.ID] = &cp
	return nil
}

func (m *fakeWorkoutRepo) GetSet(ctx context.Context, owner string, id uint) (*domain.Set, error) {
	set, ok := m.sets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if _, err := m.GetWorkoutExercise(ctx, owner, set.WorkoutExerciseID); err != nil {
		return nil, repository.ErrNotFound
	}
	cp := *set
	return &cp, nil
}

func (m *fakeWorkoutRepo) UpdateSet(ctx context.Context, owner string, set *domain.Set) error {
	if _, err := m.GetSet(ctx, owner, set.ID); err != nil {
		return err
	}
	cp := *set
	m.sets[set.ID] = &cp
	return nil
}

func (m *fakeWorkoutRepo) DeleteSet(ctx context.Context, owner string, id uint) error {
	if _, err := m.GetSet(ctx, owner, id); err != nil {
		return err
	}
	delete(m.sets, id)
	return nil
}

// fakeExerciseRepo is a minimal catalog fake.
type fakeExerciseRepo struct {
	entries map[uint]*domain.Exercise
}

func newFakeExerciseRepo(names ...string) *fakeExerciseRepo {
	m := &fakeExerciseRepo{entries: map[uint]*domain.Exercise{}}
	for i, name := range names {
		id := uint(i + 1)
		m.entries[id] = &domain.Exercise{ID: id, Name: name}
	}
	return m
}

func (m *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) error {
	for _, existing := range m.entries {
		if existing.Name == e.Name {
			return repository.ErrDuplicate
		}
	}
	e.ID = uint(len(m.entries) + 1)
	m.entries[e.ID] = e
	return nil
}

func (m *fakeExerciseRepo) GetByID(_ context.Context, id uint) (*domain.Exercise, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (m *fakeExerciseRepo) GetByName(_ context.Context, name string) (*domain.Exercise, error) {
	for _, e := range m.entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *fakeExerciseRepo) List(_ context.Context) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (m *fakeExerciseRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// --- helpers ---

func newTestService() (WorkoutService, *fakeWorkoutRepo, *fakeExerciseRepo) {
	workoutRepo := newFakeWorkoutRepo()
	exerciseRepo := newFakeExerciseRepo("Squat", "Bench Press")
	return NewWorkoutService(workoutRepo, exerciseRepo), workoutRepo, exerciseRepo
}

func seedWorkout(repo *fakeWorkoutRepo, owner, date string, createdAt time.Time) *domain.Workout {
	d, _ := domain.ParseCalDate(date)
	w := &domain.Workout{OwnerUserID: owner, Date: d, CreatedAt: createdAt}
	_ = repo.Create(context.Background(), w)
	return w
}

// --- tests ---

func TestOperationsRequireCallerIdentity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	date := domain.CalDate{Year: 2025, Month: time.September, Day: 1}

	_, err := svc.GetWorkoutsByDate(ctx, "", date)
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.GetWorkoutDatesForMonth(ctx, "", 2025, 8)
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.CreateWorkout(ctx, "", CreateWorkoutInput{Date: "2025-09-01"})
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.UpdateWorkout(ctx, "", 1, UpdateWorkoutInput{})
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.DeleteWorkout(ctx, "", 1)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreateWorkoutForcesOwner(t *testing.T) {
	svc, repo, _ := newTestService()

	w, err := svc.CreateWorkout(context.Background(), "user-1", CreateWorkoutInput{
		Name: "Push Day",
		Date: "2025-09-01",
	})
	require.NoError(t, err)
	require.Equal(t, "user-1", w.OwnerUserID)
	require.Equal(t, "2025-09-01", w.Date.String())
	require.Equal(t, "user-1", repo.workouts[w.ID].OwnerUserID)
}

func TestCreateWorkoutValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	longName := make([]byte, 101)
	longNotes := make([]byte, 1001)
	for i := range longName {
		longName[i] = 'x'
	}
	for i := range longNotes {
		longNotes[i] = 'x'
	}
	zero := 0

	cases := []CreateWorkoutInput{
		{Date: "not-a-date"},
		{Date: ""},
		{Date: "2025-09-01", Name: string(longName)},
		{Date: "2025-09-01", Notes: string(longNotes)},
		{Date: "2025-09-01", DurationMinutes: &zero},
	}
	for _, in := range cases {
		_, err := svc.CreateWorkout(ctx, "user-1", in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %+v", in)
	}
}

func TestGetWorkoutsByDateOrdersNewestFirst(t *testing.T) {
	svc, repo, _ := newTestService()
	t1 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	w1 := seedWorkout(repo, "user-1", "2025-09-01", t1)
	w2 := seedWorkout(repo, "user-1", "2025-09-01", t1.Add(2*time.Hour))
	seedWorkout(repo, "user-1", "2025-09-02", t1)

	views, err := svc.GetWorkoutsByDate(context.Background(), "user-1", w1.Date)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, w2.ID, views[0].ID)
	require.Equal(t, w1.ID, views[1].ID)
}

func TestGetWorkoutsByDateIsOwnerScoped(t *testing.T) {
	svc, repo, _ := newTestService()
	now := time.Now()
	seedWorkout(repo, "user-1", "2025-09-01", now)
	seedWorkout(repo, "user-2", "2025-09-01", now)

	views, err := svc.GetWorkoutsByDate(context.Background(), "user-2",
		domain.CalDate{Year: 2025, Month: time.September, Day: 1})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "user-2", views[0].OwnerUserID)
}

func TestGetWorkoutDatesForMonthBounds(t *testing.T) {
	svc, repo, _ := newTestService()
	now := time.Now()
	seedWorkout(repo, "user-1", "2025-08-31", now)
	seedWorkout(repo, "user-1", "2025-09-01", now)
	seedWorkout(repo, "user-1", "2025-09-01", now) // same day twice
	seedWorkout(repo, "user-1", "2025-09-30", now)
	seedWorkout(repo, "user-1", "2025-10-01", now)
	seedWorkout(repo, "user-2", "2025-09-15", now)

	// month0 = 8 is September
	dates, err := svc.GetWorkoutDatesForMonth(context.Background(), "user-1", 2025, 8)
	require.NoError(t, err)
	require.Equal(t, "2025-09-01", repo.lastFrom.String())
	require.Equal(t, "2025-09-30", repo.lastTo.String())
	require.Len(t, dates, 2)
	require.Equal(t, "2025-09-01", dates[0].String())
	require.Equal(t, "2025-09-30", dates[1].String())
}

func TestGetWorkoutDatesForMonthRejectsBadMonth(t *testing.T) {
	svc, _, _ := newTestService()
	for _, month := range []int{-1, 12} {
		_, err := svc.GetWorkoutDatesForMonth(context.Background(), "user-1", 2025, month)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
}

func TestGetWorkoutDatesInRangeEmpty(t *testing.T) {
	svc, _, _ := newTestService()
	dates, err := svc.GetWorkoutDatesInRange(context.Background(), "user-1",
		domain.CalDate{Year: 2025, Month: time.January, Day: 1},
		domain.CalDate{Year: 2025, Month: time.January, Day: 31})
	require.NoError(t, err)
	require.NotNil(t, dates)
	require.Empty(t, dates)
}

func TestUpdateWorkoutMergesNotFoundAndForeign(t *testing.T) {
	svc, repo, _ := newTestService()
	foreign := seedWorkout(repo, "user-1", "2025-09-01", time.Now())
	name := "renamed"

	// Another user's workout and a nonexistent id produce the identical error.
	_, errForeign := svc.UpdateWorkout(context.Background(), "user-2", foreign.ID, UpdateWorkoutInput{Name: &name})
	_, errMissing := svc.UpdateWorkout(context.Background(), "user-2", 9999999, UpdateWorkoutInput{Name: &name})
	require.ErrorIs(t, errForeign, ErrWorkoutNotFound)
	require.ErrorIs(t, errMissing, ErrWorkoutNotFound)
	require.Equal(t, errForeign, errMissing)

	// And the foreign row is untouched.
	require.Empty(t, repo.workouts[foreign.ID].Name)
}

func TestUpdateWorkoutPartial(t *testing.T) {
	svc, repo, _ := newTestService()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())
	repo.workouts[w.ID].Name = "Leg Day"
	name := "Leg Day II"

	updated, err := svc.UpdateWorkout(context.Background(), "user-1", w.ID, UpdateWorkoutInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Leg Day II", updated.Name)
	require.Equal(t, "2025-09-01", updated.Date.String(), "unset fields stay unchanged")

	newDate := "2025-09-02"
	updated, err = svc.UpdateWorkout(context.Background(), "user-1", w.ID, UpdateWorkoutInput{Date: &newDate})
	require.NoError(t, err)
	require.Equal(t, "2025-09-02", updated.Date.String())
	require.Equal(t, "Leg Day II", updated.Name)
}

func TestDeleteWorkoutCascades(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())

	we, err := svc.AddExerciseToWorkout(ctx, "user-1", w.ID, 1, 0, "")
	require.NoError(t, err)
	for n := 1; n <= 3; n++ {
		_, err = svc.AddSet(ctx, "user-1", we.ID, SetInput{SetNumber: n, Reps: 5})
		require.NoError(t, err)
	}
	require.Len(t, repo.sets, 3)

	deleted, err := svc.DeleteWorkout(ctx, "user-1", w.ID)
	require.NoError(t, err)
	require.Equal(t, w.ID, deleted.ID)
	require.Empty(t, repo.workouts)
	require.Empty(t, repo.exercises)
	require.Empty(t, repo.sets)
}

func TestDeleteWorkoutForeignOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())

	_, err := svc.DeleteWorkout(context.Background(), "user-2", w.ID)
	require.ErrorIs(t, err, ErrWorkoutNotFound)
	require.Contains(t, repo.workouts, w.ID)
}

func TestAddExerciseToWorkoutRejectsDuplicate(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())

	_, err := svc.AddExerciseToWorkout(ctx, "user-1", w.ID, 1, 0, "")
	require.NoError(t, err)
	_, err = svc.AddExerciseToWorkout(ctx, "user-1", w.ID, 1, 1, "")
	require.ErrorIs(t, err, ErrExerciseAlreadyInWorkout)
}

func TestAddExerciseToWorkoutUnknownExercise(t *testing.T) {
	svc, repo, _ := newTestService()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())

	_, err := svc.AddExerciseToWorkout(context.Background(), "user-1", w.ID, 999, 0, "")
	require.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestAddSetValidation(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())
	we, err := svc.AddExerciseToWorkout(ctx, "user-1", w.ID, 1, 0, "")
	require.NoError(t, err)

	negWeight := -1.0
	highRPE := 11
	bad := []SetInput{
		{SetNumber: 0, Reps: 5},
		{SetNumber: 1, Reps: 0},
		{SetNumber: 1, Reps: 5, Weight: &negWeight},
		{SetNumber: 1, Reps: 5, RPE: &highRPE},
	}
	for _, in := range bad {
		_, err := svc.AddSet(ctx, "user-1", we.ID, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %+v", in)
	}

	// nil weight and nil rpe are both fine, as is added load on a
	// bodyweight set.
	load := 20.0
	set, err := svc.AddSet(ctx, "user-1", we.ID, SetInput{SetNumber: 1, Reps: 5, IsBodyweight: true, Weight: &load})
	require.NoError(t, err)
	require.True(t, set.IsBodyweight)
	require.Equal(t, 20.0, *set.Weight)
}

func TestSetOperationsAreOwnerScoped(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())
	we, err := svc.AddExerciseToWorkout(ctx, "user-1", w.ID, 1, 0, "")
	require.NoError(t, err)
	set, err := svc.AddSet(ctx, "user-1", we.ID, SetInput{SetNumber: 1, Reps: 5})
	require.NoError(t, err)

	_, err = svc.AddSet(ctx, "user-2", we.ID, SetInput{SetNumber: 2, Reps: 5})
	require.ErrorIs(t, err, ErrWorkoutExerciseNotFound)
	_, err = svc.UpdateSet(ctx, "user-2", set.ID, SetInput{SetNumber: 1, Reps: 10})
	require.ErrorIs(t, err, ErrSetNotFound)
	require.ErrorIs(t, svc.DeleteSet(ctx, "user-2", set.ID), ErrSetNotFound)
	require.ErrorIs(t, svc.RemoveExerciseFromWorkout(ctx, "user-2", we.ID), ErrWorkoutExerciseNotFound)

	require.Contains(t, repo.sets, set.ID)
	require.Equal(t, 5, repo.sets[set.ID].Reps)
}

func TestUpdateSet(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	w := seedWorkout(repo, "user-1", "2025-09-01", time.Now())
	we, err := svc.AddExerciseToWorkout(ctx, "user-1", w.ID, 1, 0, "")
	require.NoError(t, err)
	set, err := svc.AddSet(ctx, "user-1", we.ID, SetInput{SetNumber: 1, Reps: 5})
	require.NoError(t, err)

	rpe := 8
	updated, err := svc.UpdateSet(ctx, "user-1", set.ID, SetInput{SetNumber: 1, Reps: 8, RPE: &rpe})
	require.NoError(t, err)
	require.Equal(t, 8, updated.Reps)
	require.Equal(t, 8, *updated.RPE)
	require.Equal(t, 8, repo.sets[set.ID].Reps)
}
