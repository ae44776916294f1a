package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrDescriptionRequired = errors.New("description is required")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Description string
	ProjectID   uint64
	AssigneeID  *uint64
}

// Create creates a task under a project. Completion starts false.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	task := &models.Task{
		Description: input.Description,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		Completed:   false,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get retrieves a task by ID.
func (s *TaskService) Get(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateDescription changes a task's description.
func (s *TaskService) UpdateDescription(id uint64, description string) (*models.Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	task.Description = description
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Assign sets the task's assignee.
func (s *TaskService) Assign(id, userID uint64) (*models.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	task.AssigneeID = &userID
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return task, nil
}

// Unassign clears the assignee back to the empty state (NULL).
func (s *TaskService) Unassign(id uint64) (*models.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	task.AssigneeID = nil
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to unassign task: %w", err)
	}

	return task, nil
}

// SetCompleted sets the completion flag.
func (s *TaskService) SetCompleted(id uint64, completed bool) (*models.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task and its assignee links.
func (s *TaskService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListForProject returns every task under a project.
func (s *TaskService) ListForProject(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListForProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListForAssignee returns every task assigned to a user.
func (s *TaskService) ListForAssignee(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListForAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
