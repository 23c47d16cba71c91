package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"
)

// ErrTaskNotFound is returned when no task matches both the id and the
// owner. A task owned by someone else is indistinguishable from a task that
// does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository exposes persistence operations for Task entities. Every
// read and mutation is scoped by the owning user's ID.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) error
	Get(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, userID string) error
}
