package dto

import (
	"time"

	"github.com/hanamizu/collab-api/internal/models"
)

// TaskDTO represents a task in API responses. Assignee is nil when the task is
// unassigned.
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Description string    `json:"description"`
	ProjectID   uint64    `json:"project_id"`
	Assignee    *string   `json:"assignee"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task, usernames map[uint64]string) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.AssigneeID != nil {
		if name, ok := usernames[*task.AssigneeID]; ok {
			dto.Assignee = &name
		}
	}

	return dto
}

// ToTaskDTOs converts tasks using the id-to-username map
func ToTaskDTOs(tasks []models.Task, usernames map[uint64]string) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task, usernames)
	}
	return dtos
}
