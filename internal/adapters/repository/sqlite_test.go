package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/infrastructure/config"
	"github.com/taskmaster/matrix/internal/infrastructure/database"
	"github.com/taskmaster/matrix/internal/ports"
)

func newSQLiteDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, users ports.UserRepository, email string) *entities.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entities.User{ID: uuid.New(), Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func createTask(t *testing.T, tasks ports.TaskRepository, owner uuid.UUID, title string, q entities.Quadrant, due *string) *entities.Task {
	t.Helper()
	now := time.Now().UTC()
	task := &entities.Task{Title: title, Quadrant: q, DueDate: due, UserID: owner, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, tasks.Create(context.Background(), task))
	require.NotZero(t, task.ID)
	return task
}

func day(s string) *string { return &s }

func TestSQLite_UserRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	users := NewUserRepository(db.DB)
	ctx := context.Background()

	u := createUser(t, users, "alice@example.com")

	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	err = users.Create(ctx, &entities.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestSQLite_ListOrdersUndatedLast(t *testing.T) {
	db := newSQLiteDB(t)
	users := NewUserRepository(db.DB)
	tasks := NewTaskRepository(db.DB)
	me := createUser(t, users, "me@example.com")
	other := createUser(t, users, "other@example.com")

	undated := createTask(t, tasks, me.ID, "someday", entities.QuadrantNotUrgentNotImportant, nil)
	late := createTask(t, tasks, me.ID, "late", entities.QuadrantUrgentImportant, day("2024-06-01"))
	early := createTask(t, tasks, me.ID, "early", entities.QuadrantNotUrgentImportant, day("2024-01-15"))
	createTask(t, tasks, other.ID, "not mine", entities.QuadrantUrgentImportant, day("2023-01-01"))

	list, err := tasks.List(context.Background(), ports.TaskFilter{UserID: me.ID})
	require.NoError(t, err)

	var ids []int64
	for _, task := range list {
		ids = append(ids, task.ID)
		assert.Equal(t, me.ID, task.UserID)
	}
	assert.Equal(t, []int64{early.ID, late.ID, undated.ID}, ids)
}

func TestSQLite_ListFilters(t *testing.T) {
	db := newSQLiteDB(t)
	users := NewUserRepository(db.DB)
	tasks := NewTaskRepository(db.DB)
	me := createUser(t, users, "me@example.com")
	ctx := context.Background()

	a := createTask(t, tasks, me.ID, "a", entities.QuadrantUrgentImportant, nil)
	createTask(t, tasks, me.ID, "b", entities.QuadrantUrgentNotImportant, nil)
	_, err := tasks.Update(ctx, a.ID, me.ID, ports.TaskUpdate{Completed: ports.Some(entities.FlagSet)})
	require.NoError(t, err)

	q := entities.QuadrantUrgentNotImportant
	byQuadrant, err := tasks.List(ctx, ports.TaskFilter{UserID: me.ID, Quadrant: &q})
	require.NoError(t, err)
	require.Len(t, byQuadrant, 1)
	assert.Equal(t, "b", byQuadrant[0].Title)

	done := entities.FlagSet
	completed, err := tasks.List(ctx, ports.TaskFilter{UserID: me.ID, Completed: &done})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "a", completed[0].Title)
}

func TestSQLite_UpdateTouchesOnlySetColumns(t *testing.T) {
	db := newSQLiteDB(t)
	users := NewUserRepository(db.DB)
	tasks := NewTaskRepository(db.DB)
	me := createUser(t, users, "me@example.com")
	ctx := context.Background()

	task := createTask(t, tasks, me.ID, "draft", entities.QuadrantUrgentImportant, day("2024-02-02"))

	got, err := tasks.Update(ctx, task.ID, me.ID, ports.TaskUpdate{Title: ports.Some("final")})
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, entities.QuadrantUrgentImportant, got.Quadrant)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2024-02-02", *got.DueDate)
	assert.Equal(t, entities.FlagUnset, got.Completed)

	got, err = tasks.Update(ctx, task.ID, me.ID, ports.TaskUpdate{DueDate: ports.Some[*string](nil)})
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, "final", got.Title)
}

func TestSQLite_WritesAreScopedToOwner(t *testing.T) {
	db := newSQLiteDB(t)
	users := NewUserRepository(db.DB)
	tasks := NewTaskRepository(db.DB)
	owner := createUser(t, users, "owner@example.com")
	intruder := createUser(t, users, "intruder@example.com")
	ctx := context.Background()

	task := createTask(t, tasks, owner.ID, "private", entities.QuadrantUrgentImportant, nil)

	_, err := tasks.Update(ctx, task.ID, intruder.ID, ports.TaskUpdate{Title: ports.Some("hijacked")})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID, intruder.ID), entities.ErrTaskNotFound)

	stored, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", stored.Title)
	assert.Equal(t, owner.ID, stored.UserID)

	require.NoError(t, tasks.Delete(ctx, task.ID, owner.ID))
	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestSQLite_SchemaRejectsInvalidRows(t *testing.T) {
	db := newSQLiteDB(t)
	users := NewUserRepository(db.DB)
	tasks := NewTaskRepository(db.DB)
	me := createUser(t, users, "me@example.com")
	now := time.Now().UTC()

	err := tasks.Create(context.Background(), &entities.Task{Title: "x", Quadrant: "later", UserID: me.ID, CreatedAt: now, UpdatedAt: now})
	assert.Error(t, err)

	err = tasks.Create(context.Background(), &entities.Task{Title: "x", Quadrant: entities.QuadrantUrgentImportant, UserID: uuid.New(), CreatedAt: now, UpdatedAt: now})
	assert.Error(t, err)
}
