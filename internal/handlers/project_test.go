package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hanamizu/collab-api/internal/dto"
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/services"
	"github.com/stretchr/testify/require"
)

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")

	body := marshalBody(t, map[string]string{"name": "Skunkworks"})
	c, w := testContext(http.MethodPost, "/projects", body, alice.ID)

	env.projectHandler.CreateProject(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Project dto.ProjectDTO `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Skunkworks", response.Project.Name)
	require.Equal(t, "alice", response.Project.Manager)

	// The creator starts out as a member.
	isMember, err := env.members.Contains(response.Project.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestProjectHandler_CreateProjectDuplicateName(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	_, err := env.projectService.Create(alice.ID, "Skunkworks")
	require.NoError(t, err)

	// Name collisions are global, not per user.
	body := marshalBody(t, map[string]string{"name": "Skunkworks"})
	c, w := testContext(http.MethodPost, "/projects", body, bob.ID)

	env.projectHandler.CreateProject(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestProjectHandler_RenameProject(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	project, err := env.projectService.Create(alice.ID, "Skunkworks")
	require.NoError(t, err)

	// Non-creators may not rename.
	body := marshalBody(t, map[string]string{
		"id":   fmt.Sprintf("%d", project.ID),
		"name": "Hijacked",
	})
	c, w := testContext(http.MethodPatch, "/project/name", body, bob.ID)

	env.projectHandler.RenameProject(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	body = marshalBody(t, map[string]string{
		"id":   fmt.Sprintf("%d", project.ID),
		"name": "Moonshot",
	})
	c, w = testContext(http.MethodPatch, "/project/name", body, alice.ID)

	env.projectHandler.RenameProject(c)
	require.Equal(t, http.StatusOK, w.Code)

	renamed, err := env.projectService.Get(project.ID)
	require.NoError(t, err)
	require.Equal(t, "Moonshot", renamed.Name)
}

func TestProjectHandler_TransferManager(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	project, err := env.projectService.Create(alice.ID, "Skunkworks")
	require.NoError(t, err)
	require.NoError(t, env.members.Add(project.ID, alice.ID))

	// The new manager must already be a member.
	body := marshalBody(t, map[string]string{
		"id":      fmt.Sprintf("%d", project.ID),
		"manager": "bob",
	})
	c, w := testContext(http.MethodPatch, "/project/manager", body, alice.ID)

	env.projectHandler.TransferManager(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, env.members.Add(project.ID, bob.ID))

	c, w = testContext(http.MethodPatch, "/project/manager", body, alice.ID)

	env.projectHandler.TransferManager(c)
	require.Equal(t, http.StatusOK, w.Code)

	transferred, err := env.projectService.Get(project.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, transferred.CreatorID)

	// Alice handed over control; she may no longer rename.
	body = marshalBody(t, map[string]string{
		"id":   fmt.Sprintf("%d", project.ID),
		"name": "Stolen Back",
	})
	c, w = testContext(http.MethodPatch, "/project/name", body, alice.ID)

	env.projectHandler.RenameProject(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectHandler_Members(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")
	carol := createTestUser(t, env, "carol")

	project, err := env.projectService.Create(alice.ID, "Skunkworks")
	require.NoError(t, err)
	require.NoError(t, env.members.Add(project.ID, alice.ID))

	// Only the creator may add members.
	body := marshalBody(t, map[string]string{
		"id":       fmt.Sprintf("%d", project.ID),
		"username": "carol",
	})
	c, w := testContext(http.MethodPost, "/project/members", body, bob.ID)

	env.projectHandler.AddMember(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	body = marshalBody(t, map[string]string{
		"id":       fmt.Sprintf("%d", project.ID),
		"username": "bob",
	})
	c, w = testContext(http.MethodPost, "/project/members", body, alice.ID)

	env.projectHandler.AddMember(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// Members can see the roster, outsiders cannot.
	url := fmt.Sprintf("/project/members?id=%d", project.ID)
	c, w = testContext(http.MethodGet, url, nil, bob.ID)

	env.projectHandler.GetMembers(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []string `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.ElementsMatch(t, []string{"alice", "bob"}, response.Members)

	c, w = testContext(http.MethodGet, url, nil, carol.ID)

	env.projectHandler.GetMembers(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Removing a non-member fails; removing bob works.
	removeURL := fmt.Sprintf("/project/members?id=%d&username=carol", project.ID)
	c, w = testContext(http.MethodDelete, removeURL, nil, alice.ID)

	env.projectHandler.RemoveMember(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	removeURL = fmt.Sprintf("/project/members?id=%d&username=bob", project.ID)
	c, w = testContext(http.MethodDelete, removeURL, nil, alice.ID)

	env.projectHandler.RemoveMember(c)
	require.Equal(t, http.StatusOK, w.Code)

	isMember, err := env.members.Contains(project.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestProjectHandler_DeleteProjectCascade(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	project, err := env.projectService.Create(alice.ID, "Skunkworks")
	require.NoError(t, err)
	require.NoError(t, env.members.Add(project.ID, alice.ID))
	require.NoError(t, env.members.Add(project.ID, bob.ID))

	task, err := env.taskService.Create(services.CreateTaskInput{
		Description: "wire the thing",
		ProjectID:   project.ID,
		AssigneeID:  &bob.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.assignees.Add(task.ID, bob.ID))

	// Only the creator may delete.
	url := fmt.Sprintf("/projects?id=%d", project.ID)
	c, w := testContext(http.MethodDelete, url, nil, bob.ID)

	env.projectHandler.DeleteProject(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	c, w = testContext(http.MethodDelete, url, nil, alice.ID)

	env.projectHandler.DeleteProject(c)
	require.Equal(t, http.StatusOK, w.Code)

	_, err = env.projectService.Get(project.ID)
	require.ErrorIs(t, err, services.ErrProjectNotFound)

	_, err = env.taskService.Get(task.ID)
	require.ErrorIs(t, err, services.ErrTaskNotFound)

	// No orphaned relation rows on either table.
	var memberRows int64
	require.NoError(t, env.db.Table(models.TableProjectMembers).Where("group_id = ?", project.ID).Count(&memberRows).Error)
	require.Zero(t, memberRows)

	var assigneeRows int64
	require.NoError(t, env.db.Table(models.TableTaskAssignees).Where("group_id = ?", task.ID).Count(&assigneeRows).Error)
	require.Zero(t, assigneeRows)
}

func TestProjectHandler_GetUserProjects(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	mine, err := env.projectService.Create(alice.ID, "Mine")
	require.NoError(t, err)
	require.NoError(t, env.members.Add(mine.ID, alice.ID))

	shared, err := env.projectService.Create(bob.ID, "Shared")
	require.NoError(t, err)
	require.NoError(t, env.members.Add(shared.ID, bob.ID))
	require.NoError(t, env.members.Add(shared.ID, alice.ID))

	_, err = env.projectService.Create(bob.ID, "Theirs")
	require.NoError(t, err)

	c, w := testContext(http.MethodGet, "/user/projects", nil, alice.ID)

	env.projectHandler.GetUserProjects(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects []dto.ProjectDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	names := make([]string, len(response.Projects))
	for i, p := range response.Projects {
		names[i] = p.Name
	}
	require.ElementsMatch(t, []string{"Mine", "Shared"}, names)
}
