package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapp/internal/cache"
	apperrors "todoapp/internal/errors"
	"todoapp/internal/model"
	"todoapp/internal/repository"
)

const taskListCacheTTL = time.Minute

// TaskUpdate carries the optional fields of a partial task update.
type TaskUpdate struct {
	Task *string
}

// TaskService handles owner-scoped task operations. Every mutation checks
// ownership before touching the store.
type TaskService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	cache    *cache.Client
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(taskRepo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{taskRepo: taskRepo, cache: cache}
}

func taskListCacheKey(ownerID uuid.UUID) string {
	return "tasks:" + ownerID.String()
}

// List returns the owner's tasks, newest first.
func (s *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	if data, _ := s.cache.Get(ctx, taskListCacheKey(ownerID)); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, taskListCacheKey(ownerID), payload, taskListCacheTTL)
	}
	return tasks, nil
}

// Create persists a new task owned by ownerID.
func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Task, error) {
	task := &model.Task{
		Task:   text,
		UserID: ownerID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	_ = s.cache.Delete(ctx, taskListCacheKey(ownerID))
	return task, nil
}

// Update applies a partial update to a task after the ownership check.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*model.Task, error) {
	task, err := s.fetchOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Task != nil {
		task.Task = *update.Task
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	_ = s.cache.Delete(ctx, taskListCacheKey(ownerID))
	return task, nil
}

// Delete removes a task after the ownership check.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if _, err := s.fetchOwned(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	_ = s.cache.Delete(ctx, taskListCacheKey(ownerID))
	return nil
}

// fetchOwned loads a task and rejects before any mutation when it is missing
// or owned by someone else.
func (s *taskService) fetchOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task.UserID != ownerID {
		return nil, apperrors.ErrNotTaskOwner
	}
	return task, nil
}
