package dto

import (
	"time"

	"github.com/hanamizu/collab-api/internal/models"
)

// ProjectDTO represents a project in API responses, with the creator resolved
// to a username.
type ProjectDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Manager   string    `json:"manager"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project, manager string) ProjectDTO {
	return ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		Manager:   manager,
		CreatedAt: project.CreatedAt,
	}
}

// ToProjectDTOs converts projects using the id-to-username map
func ToProjectDTOs(projects []models.Project, usernames map[uint64]string) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project, usernames[project.CreatorID])
	}
	return dtos
}
