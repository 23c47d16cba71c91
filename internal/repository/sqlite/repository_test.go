package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, NewUserRepository(db).Init(context.Background()))
	require.NoError(t, NewTaskRepository(db).Init(context.Background()))
	return db
}

func createTestUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, users, "a@x.com")
	require.NotEmpty(t, user.ID)
	require.False(t, user.CreatedAt.IsZero())

	byEmail, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)
	require.Equal(t, "Test User", byEmail.Name)

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	createTestUser(t, users, "dup@x.com")

	err := users.Create(context.Background(), &domain.User{
		Name:         "Other",
		Email:        "dup@x.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	_, err := users.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = users.GetByID(ctx, "no-such-id")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "owner@x.com")
	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	task := &domain.Task{
		UserID:      owner.ID,
		Title:       "Write report",
		Description: "quarterly numbers",
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityHigh,
		DueDate:     &due,
	}
	require.NoError(t, tasks.Create(ctx, task))
	require.NotEmpty(t, task.ID)

	got, err := tasks.Get(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, "Write report", got.Title)
	require.Equal(t, domain.TaskPriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	require.True(t, got.DueDate.Equal(due))
}

func TestTaskRepository_OwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice@x.com")
	bob := createTestUser(t, users, "bob@x.com")

	task := &domain.Task{
		UserID:   alice.ID,
		Title:    "Alice's task",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityMedium,
	}
	require.NoError(t, tasks.Create(ctx, task))

	// another user's task is indistinguishable from a missing one
	_, err := tasks.Get(ctx, task.ID, bob.ID)
	require.ErrorIs(t, err, repository.ErrTaskNotFound)

	err = tasks.Delete(ctx, task.ID, bob.ID)
	require.ErrorIs(t, err, repository.ErrTaskNotFound)

	task.Title = "hijacked"
	task.UserID = bob.ID
	err = tasks.Update(ctx, task)
	require.ErrorIs(t, err, repository.ErrTaskNotFound)

	// still intact for the owner
	got, err := tasks.Get(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice's task", got.Title)
}

func TestTaskRepository_ListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "list@x.com")
	other := createTestUser(t, users, "other@x.com")

	for _, status := range []domain.TaskStatus{
		domain.TaskStatusPending,
		domain.TaskStatusCompleted,
		domain.TaskStatusCompleted,
	} {
		require.NoError(t, tasks.Create(ctx, &domain.Task{
			UserID:   owner.ID,
			Title:    "t",
			Status:   status,
			Priority: domain.TaskPriorityLow,
		}))
	}
	require.NoError(t, tasks.Create(ctx, &domain.Task{
		UserID:   other.ID,
		Title:    "not mine",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityLow,
	}))

	all, err := tasks.List(ctx, owner.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	completed := domain.TaskStatusCompleted
	filtered, err := tasks.List(ctx, owner.ID, &completed)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, task := range filtered {
		require.Equal(t, domain.TaskStatusCompleted, task.Status)
		require.Equal(t, owner.ID, task.UserID)
	}
}

func TestTaskRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "upd@x.com")
	task := &domain.Task{
		UserID:   owner.ID,
		Title:    "before",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityMedium,
	}
	require.NoError(t, tasks.Create(ctx, task))

	task.Title = "after"
	task.Status = domain.TaskStatusInProgress
	require.NoError(t, tasks.Update(ctx, task))

	got, err := tasks.Get(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, "after", got.Title)
	require.Equal(t, domain.TaskStatusInProgress, got.Status)

	require.NoError(t, tasks.Delete(ctx, task.ID, owner.ID))
	_, err = tasks.Get(ctx, task.ID, owner.ID)
	require.ErrorIs(t, err, repository.ErrTaskNotFound)
}
