package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/dto"
	apierrors "github.com/hanamizu/collab-api/internal/errors"
	"github.com/hanamizu/collab-api/internal/middleware"
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers. members is the group-item
// relation over project membership, assignees the one over task assignment.
type TaskHandler struct {
	taskService    *services.TaskService
	projectService *services.ProjectService
	authService    *services.AuthService
	members        *services.MembershipService
	assignees      *services.MembershipService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, projectService *services.ProjectService, authService *services.AuthService, members, assignees *services.MembershipService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		projectService: projectService,
		authService:    authService,
		members:        members,
		assignees:      assignees,
	}
}

// CreateTask creates a task under a project. Creator only. An initial
// assignee must already be a project member; the assignment link is only
// created once the task itself exists.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		ID          string `json:"id" binding:"required"`
		Description string `json:"description" binding:"required"`
		Assignee    string `json:"assignee"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	projectID, err := strconv.ParseUint(req.ID, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if _, err := h.projectService.AssertCreator(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	var assigneeID *uint64
	if req.Assignee != "" {
		assignee, err := h.authService.GetUserByUsername(req.Assignee)
		if err != nil {
			respondAuthError(c, err)
			return
		}

		if err := h.members.Assert(projectID, assignee.ID); err != nil {
			respondMembershipError(c, err, "Assignee is not a member of this project")
			return
		}

		assigneeID = &assignee.ID
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Description: req.Description,
		ProjectID:   projectID,
		AssigneeID:  assigneeID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if assigneeID != nil {
		if err := h.assignees.Add(task.ID, *assigneeID); err != nil {
			apierrors.InternalError(c, "Failed to record task assignment")
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    h.taskDTO(*task),
	})
}

// GetProjectTasks lists a project's tasks. Members only.
func (h *TaskHandler) GetProjectTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if _, err := h.projectService.Get(projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	if err := h.members.Assert(projectID, userID); err != nil {
		respondMembershipError(c, err, "You are not a member of this project")
		return
	}

	tasks, err := h.taskService.ListForProject(projectID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	usernames, err := h.assigneeUsernames(tasks)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks, usernames),
	})
}

// DeleteTask removes a task and its assignee links. Project creator only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := h.taskForCreator(c, c.Query("id"))
	if !ok {
		return
	}

	if err := h.taskService.Delete(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SetCompleted sets a task's completion flag. Project creator only.
func (h *TaskHandler) SetCompleted(c *gin.Context) {
	type SetCompletedRequest struct {
		ID        string `json:"id" binding:"required"`
		Completed *bool  `json:"completed" binding:"required"`
	}

	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, ok := h.taskForCreator(c, req.ID)
	if !ok {
		return
	}

	task, err := h.taskService.SetCompleted(task.ID, *req.Completed)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    h.taskDTO(*task),
	})
}

// UpdateDescription changes a task's description. Project creator only.
func (h *TaskHandler) UpdateDescription(c *gin.Context) {
	type UpdateDescriptionRequest struct {
		ID          string `json:"id" binding:"required"`
		Description string `json:"description" binding:"required"`
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, ok := h.taskForCreator(c, req.ID)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateDescription(task.ID, req.Description)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    h.taskDTO(*task),
	})
}

// Assign sets a task's assignee, replacing any previous one. Project creator
// only; the assignee must be a project member.
func (h *TaskHandler) Assign(c *gin.Context) {
	type AssignRequest struct {
		ID       string `json:"id" binding:"required"`
		Assignee string `json:"assignee" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, ok := h.taskForCreator(c, req.ID)
	if !ok {
		return
	}

	assignee, err := h.authService.GetUserByUsername(req.Assignee)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.members.Assert(task.ProjectID, assignee.ID); err != nil {
		respondMembershipError(c, err, "Assignee is not a member of this project")
		return
	}

	// Replace any previous assignment link before recording the new one.
	if err := h.assignees.ClearGroup(task.ID); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	task, err = h.taskService.Assign(task.ID, assignee.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if err := h.assignees.Add(task.ID, assignee.ID); err != nil {
		apierrors.InternalError(c, "Failed to record task assignment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task assigned successfully",
		"task":    h.taskDTO(*task),
	})
}

// Unassign clears a task's assignee back to the empty state. Project creator
// only.
func (h *TaskHandler) Unassign(c *gin.Context) {
	task, ok := h.taskForCreator(c, c.Query("id"))
	if !ok {
		return
	}

	task, err := h.taskService.Unassign(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if err := h.assignees.ClearGroup(task.ID); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task unassigned successfully",
		"task":    h.taskDTO(*task),
	})
}

// GetUserTasks returns the tasks assigned to the caller.
func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListForAssignee(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	usernames, err := h.assigneeUsernames(tasks)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks, usernames),
	})
}

// taskForCreator parses a task ID, loads the task, and verifies the caller
// created the owning project. Responds and returns false on any failure.
func (h *TaskHandler) taskForCreator(c *gin.Context, idParam string) (*models.Task, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	taskID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return nil, false
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		respondTaskError(c, err)
		return nil, false
	}

	if _, err := h.projectService.AssertCreator(task.ProjectID, userID); err != nil {
		respondProjectError(c, err)
		return nil, false
	}

	return task, true
}

func (h *TaskHandler) taskDTO(task models.Task) dto.TaskDTO {
	usernames := map[uint64]string{}
	if task.AssigneeID != nil {
		resolved, err := h.authService.UsernamesByIDs([]uint64{*task.AssigneeID})
		if err == nil {
			usernames = resolved
		}
	}
	return dto.ToTaskDTO(task, usernames)
}

func (h *TaskHandler) assigneeUsernames(tasks []models.Task) (map[uint64]string, error) {
	ids := make([]uint64, 0, len(tasks))
	for _, task := range tasks {
		if task.AssigneeID != nil {
			ids = append(ids, *task.AssigneeID)
		}
	}
	return h.authService.UsernamesByIDs(ids)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDescriptionRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
