package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/dto"
	apierrors "github.com/hanamizu/collab-api/internal/errors"
	"github.com/hanamizu/collab-api/internal/middleware"
	"github.com/hanamizu/collab-api/internal/services"
	"github.com/hanamizu/collab-api/internal/utils"
)

// ProjectHandler coordinates project and project-membership HTTP handlers.
// members is the group-item relation instantiated over project membership.
type ProjectHandler struct {
	projectService *services.ProjectService
	authService    *services.AuthService
	members        *services.MembershipService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, authService *services.AuthService, members *services.MembershipService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authService:    authService,
		members:        members,
	}
}

// CreateProject creates a project and adds the creator as its first member.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(userID, req.Name)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	if err := h.members.Add(project.ID, userID); err != nil {
		apierrors.InternalError(c, "Failed to add creator to project")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": dto.ToProjectDTO(*project, user.Username),
	})
}

// ListProjects returns all projects with their managers' usernames.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.List(params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	ids := make([]uint64, 0, len(projects))
	for _, project := range projects {
		ids = append(ids, project.CreatorID)
	}
	usernames, err := h.authService.UsernamesByIDs(ids)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects, usernames),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// DeleteProject removes a project. Only the creator may delete it; the
// cascade removes members, tasks, and assignee links before the project row.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
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

	if _, err := h.projectService.AssertCreator(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	if err := h.projectService.Delete(projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// RenameProject changes a project's name. Creator only.
func (h *ProjectHandler) RenameProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RenameProjectRequest struct {
		ID   string `json:"id" binding:"required"`
		Name string `json:"name" binding:"required"`
	}

	var req RenameProjectRequest
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

	project, err := h.projectService.Rename(projectID, req.Name)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project renamed successfully",
		"project": dto.ToProjectDTO(*project, user.Username),
	})
}

// TransferManager hands the project to a new manager, who must already be a
// member. Creator only.
func (h *ProjectHandler) TransferManager(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type TransferManagerRequest struct {
		ID      string `json:"id" binding:"required"`
		Manager string `json:"manager" binding:"required"`
	}

	var req TransferManagerRequest
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

	newManager, err := h.authService.GetUserByUsername(req.Manager)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.members.Assert(projectID, newManager.ID); err != nil {
		respondMembershipError(c, err, "User is not a member of this project")
		return
	}

	project, err := h.projectService.TransferCreator(projectID, newManager.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project manager updated successfully",
		"project": dto.ToProjectDTO(*project, newManager.Username),
	})
}

// GetMembers lists a project's members as usernames. Members only.
func (h *ProjectHandler) GetMembers(c *gin.Context) {
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

	memberIDs, err := h.members.Items(projectID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	usernames, err := h.authService.UsernamesByIDs(memberIDs)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	members := make([]string, len(memberIDs))
	for i, id := range memberIDs {
		members[i] = usernames[id]
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
	})
}

// AddMember adds a user to the project. Creator only.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddMemberRequest struct {
		ID       string `json:"id" binding:"required"`
		Username string `json:"username" binding:"required"`
	}

	var req AddMemberRequest
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

	member, err := h.authService.GetUserByUsername(req.Username)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.members.Add(projectID, member.ID); err != nil {
		apierrors.InternalError(c, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
	})
}

// RemoveMember removes a user from the project. Creator only; fails with
// NotFound if the user is not a member.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
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

	if _, err := h.projectService.AssertCreator(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	member, err := h.authService.GetUserByUsername(c.Query("username"))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.members.Remove(projectID, member.ID); err != nil {
		respondMembershipError(c, err, "User is not a member of this project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// GetUserProjects returns the projects the caller belongs to.
func (h *ProjectHandler) GetUserProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectIDs, err := h.members.Groups(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	projects, err := h.projectService.GetByIDs(projectIDs)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	creatorIDs := make([]uint64, 0, len(projects))
	for _, project := range projects {
		creatorIDs = append(creatorIDs, project.CreatorID)
	}
	usernames, err := h.authService.UsernamesByIDs(creatorIDs)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects, usernames),
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectCreator):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func respondMembershipError(c *gin.Context, err error, message string) {
	if errors.Is(err, services.ErrNotInGroup) {
		apierrors.NotFound(c, message)
		return
	}
	apierrors.InternalError(c, "Internal server error")
}
