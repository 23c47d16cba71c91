package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// ErrTaskNotFound covers both a missing task and a task owned by another
// user; callers must not be able to tell the two apart.
var ErrTaskNotFound = repository.ErrTaskNotFound

// TaskUpdate carries the mutable fields of a task; nil means "leave as is".
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	ClearDue    bool
}

// TaskService coordinates task operations. Every method takes the
// authenticated owner's ID and scopes all reads and writes by it.
type TaskService interface {
	Create(ctx context.Context, userID, title, description string, priority domain.TaskPriority, dueDate *time.Time) (*domain.Task, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	List(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error)
	Update(ctx context.Context, userID, taskID string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, userID, title, description string, priority domain.TaskPriority, dueDate *time.Time) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if userID == "" {
		return nil, errors.New("owner is required")
	}
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: invalid priority", ErrInvalidInput)
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.tasks.Get(ctx, taskID, userID)
}

func (s *taskService) List(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	if status != nil && !domain.ValidStatus(*status) {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return s.tasks.List(ctx, userID, status)
}

func (s *taskService) Update(ctx context.Context, userID, taskID string, update TaskUpdate) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		if !domain.ValidStatus(*update.Status) {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		task.Status = *update.Status
	}
	if update.Priority != nil {
		if !domain.ValidPriority(*update.Priority) {
			return nil, fmt.Errorf("%w: invalid priority", ErrInvalidInput)
		}
		task.Priority = *update.Priority
	}
	if update.ClearDue {
		task.DueDate = nil
	} else if update.DueDate != nil {
		task.DueDate = update.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.tasks.Delete(ctx, taskID, userID)
}
