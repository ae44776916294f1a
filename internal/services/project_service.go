package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/repository"
	"github.com/hanamizu/collab-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name cannot be empty")
	ErrProjectNameTaken    = errors.New("a project with this name already exists")
	ErrNotProjectCreator   = errors.New("only the project creator can perform this action")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// Create creates a project with a globally unique name.
func (s *ProjectService) Create(creatorID uint64, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	if err := s.ensureNameFree(name); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:      name,
		CreatorID: creatorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Get retrieves a project by ID.
func (s *ProjectService) Get(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetByName retrieves a project by its name.
func (s *ProjectService) GetByName(name string) (*models.Project, error) {
	project, err := s.projectRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetByIDs retrieves all projects matching the given IDs.
func (s *ProjectService) GetByIDs(ids []uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find projects: %w", err)
	}
	return projects, nil
}

// List returns all projects.
func (s *ProjectService) List(params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Rename changes a project's name, re-checking uniqueness.
func (s *ProjectService) Rename(id uint64, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if project.Name != name {
		if err := s.ensureNameFree(name); err != nil {
			return nil, err
		}
	}

	project.Name = name
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to rename project: %w", err)
	}

	return project, nil
}

// TransferCreator hands the project to a new creator. Whether the new creator
// is a member is the caller's concern, not checked here.
func (s *ProjectService) TransferCreator(id, newCreatorID uint64) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	project.CreatorID = newCreatorID
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to transfer project: %w", err)
	}

	return project, nil
}

// Delete removes a project and cascades to its members, tasks, and the tasks'
// assignee links.
func (s *ProjectService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AssertCreator verifies the project exists and the user created it.
func (s *ProjectService) AssertCreator(id, userID uint64) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if project.CreatorID != userID {
		return nil, ErrNotProjectCreator
	}

	return project, nil
}

func (s *ProjectService) ensureNameFree(name string) error {
	if _, err := s.projectRepo.FindByName(name); err == nil {
		return ErrProjectNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check project name: %w", err)
	}
	return nil
}
