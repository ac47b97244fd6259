package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "todoapp/internal/errors"
	"todoapp/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTaskService_Create(t *testing.T) {
	ownerID := uuid.New()
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Task).ID = uuid.New()
		}).Return(nil)

	svc := NewTaskService(mockRepo, noCache)
	task, err := svc.Create(context.Background(), ownerID, "buy milk")

	assert.NoError(t, err)
	assert.Equal(t, "buy milk", task.Task)
	assert.Equal(t, ownerID, task.UserID)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_List(t *testing.T) {
	ownerID := uuid.New()
	owned := []model.Task{
		{ID: uuid.New(), Task: "write report", UserID: ownerID},
		{ID: uuid.New(), Task: "buy milk", UserID: ownerID},
	}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByOwner", mock.Anything, ownerID).Return(owned, nil)

	svc := NewTaskService(mockRepo, noCache)
	tasks, err := svc.List(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Equal(t, owned, tasks)
	for _, task := range tasks {
		assert.Equal(t, ownerID, task.UserID)
	}
	mockRepo.AssertExpectations(t)
}

func TestTaskService_Update(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	taskID := uuid.New()
	newText := "buy oat milk"

	tests := []struct {
		name          string
		requester     uuid.UUID
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:      "owner updates own task",
			requester: ownerID,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, taskID).Return(&model.Task{
					ID: taskID, Task: "buy milk", UserID: ownerID,
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "non-owner is rejected before mutation",
			requester: otherID,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, taskID).Return(&model.Task{
					ID: taskID, Task: "buy milk", UserID: ownerID,
				}, nil)
			},
			expectedError: apperrors.ErrNotTaskOwner,
		},
		{
			name:      "missing task",
			requester: ownerID,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, taskID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			svc := NewTaskService(mockRepo, noCache)
			task, err := svc.Update(context.Background(), tt.requester, taskID, TaskUpdate{Task: &newText})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, newText, task.Task)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Update_PartialKeepsText(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, taskID).Return(&model.Task{
		ID: taskID, Task: "buy milk", UserID: ownerID,
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	svc := NewTaskService(mockRepo, noCache)
	task, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{})

	assert.NoError(t, err)
	assert.Equal(t, "buy milk", task.Task)
}

func TestTaskService_Delete(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name          string
		requester     uuid.UUID
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:      "owner deletes own task",
			requester: ownerID,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, taskID).Return(&model.Task{
					ID: taskID, Task: "buy milk", UserID: ownerID,
				}, nil)
				m.On("Delete", mock.Anything, taskID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "non-owner is rejected before mutation",
			requester: otherID,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, taskID).Return(&model.Task{
					ID: taskID, Task: "buy milk", UserID: ownerID,
				}, nil)
			},
			expectedError: apperrors.ErrNotTaskOwner,
		},
		{
			name:      "missing task",
			requester: ownerID,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, taskID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			svc := NewTaskService(mockRepo, noCache)
			err := svc.Delete(context.Background(), tt.requester, taskID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
