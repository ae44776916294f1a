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

// taskFixture is a project created by alice with bob as a second member.
type taskFixture struct {
	env     testEnv
	alice   *models.User
	bob     *models.User
	project *models.Project
}

func setupTaskFixture(t *testing.T) taskFixture {
	t.Helper()

	env := setupTestEnv(t)

	alice := createTestUser(t, env, "alice")
	bob := createTestUser(t, env, "bob")

	project, err := env.projectService.Create(alice.ID, "Skunkworks")
	require.NoError(t, err)
	require.NoError(t, env.members.Add(project.ID, alice.ID))
	require.NoError(t, env.members.Add(project.ID, bob.ID))

	return taskFixture{env: env, alice: alice, bob: bob, project: project}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	f := setupTaskFixture(t)

	body := marshalBody(t, map[string]string{
		"id":          fmt.Sprintf("%d", f.project.ID),
		"description": "wire the thing",
	})
	c, w := testContext(http.MethodPost, "/project/tasks", body, f.alice.ID)

	f.env.taskHandler.CreateTask(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Task dto.TaskDTO `json:"task"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "wire the thing", response.Task.Description)
	require.Nil(t, response.Task.Assignee)
	require.False(t, response.Task.Completed)
}

func TestTaskHandler_CreateTaskWithAssignee(t *testing.T) {
	f := setupTaskFixture(t)

	carol := createTestUser(t, f.env, "carol")

	// Carol is not a member, so she cannot be the initial assignee.
	body := marshalBody(t, map[string]string{
		"id":          fmt.Sprintf("%d", f.project.ID),
		"description": "wire the thing",
		"assignee":    "carol",
	})
	c, w := testContext(http.MethodPost, "/project/tasks", body, f.alice.ID)

	f.env.taskHandler.CreateTask(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, f.env.db.Model(&models.Task{}).Where("project_id = ?", f.project.ID).Count(&count).Error)
	require.Zero(t, count, "task must not be created when the assignee check fails")

	require.NoError(t, f.env.members.Add(f.project.ID, carol.ID))

	c, w = testContext(http.MethodPost, "/project/tasks", body, f.alice.ID)

	f.env.taskHandler.CreateTask(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Task dto.TaskDTO `json:"task"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Task.Assignee)
	require.Equal(t, "carol", *response.Task.Assignee)

	linked, err := f.env.assignees.Contains(response.Task.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, linked)
}

func TestTaskHandler_CreateTaskNotCreator(t *testing.T) {
	f := setupTaskFixture(t)

	// Bob is a member but not the creator.
	body := marshalBody(t, map[string]string{
		"id":          fmt.Sprintf("%d", f.project.ID),
		"description": "sneaky task",
	})
	c, w := testContext(http.MethodPost, "/project/tasks", body, f.bob.ID)

	f.env.taskHandler.CreateTask(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskHandler_GetProjectTasks(t *testing.T) {
	f := setupTaskFixture(t)

	carol := createTestUser(t, f.env, "carol")

	_, err := f.env.taskService.Create(services.CreateTaskInput{
		Description: "first",
		ProjectID:   f.project.ID,
	})
	require.NoError(t, err)
	_, err = f.env.taskService.Create(services.CreateTaskInput{
		Description: "second",
		ProjectID:   f.project.ID,
	})
	require.NoError(t, err)

	url := fmt.Sprintf("/project/tasks?id=%d", f.project.ID)

	// Members see the list.
	c, w := testContext(http.MethodGet, url, nil, f.bob.ID)

	f.env.taskHandler.GetProjectTasks(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Tasks, 2)

	// Outsiders do not.
	c, w = testContext(http.MethodGet, url, nil, carol.ID)

	f.env.taskHandler.GetProjectTasks(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_SetCompleted(t *testing.T) {
	f := setupTaskFixture(t)

	task, err := f.env.taskService.Create(services.CreateTaskInput{
		Description: "finish me",
		ProjectID:   f.project.ID,
	})
	require.NoError(t, err)

	body := marshalBody(t, map[string]any{
		"id":        fmt.Sprintf("%d", task.ID),
		"completed": true,
	})

	// Members who are not the creator may not flip the flag.
	c, w := testContext(http.MethodPatch, "/project/tasks", body, f.bob.ID)

	f.env.taskHandler.SetCompleted(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	c, w = testContext(http.MethodPatch, "/project/tasks", body, f.alice.ID)

	f.env.taskHandler.SetCompleted(c)
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := f.env.taskService.Get(task.ID)
	require.NoError(t, err)
	require.True(t, updated.Completed)
}

func TestTaskHandler_UpdateDescription(t *testing.T) {
	f := setupTaskFixture(t)

	task, err := f.env.taskService.Create(services.CreateTaskInput{
		Description: "old words",
		ProjectID:   f.project.ID,
	})
	require.NoError(t, err)

	body := marshalBody(t, map[string]string{
		"id":          fmt.Sprintf("%d", task.ID),
		"description": "new words",
	})
	c, w := testContext(http.MethodPatch, "/project/task/description", body, f.alice.ID)

	f.env.taskHandler.UpdateDescription(c)
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := f.env.taskService.Get(task.ID)
	require.NoError(t, err)
	require.Equal(t, "new words", updated.Description)
}

func TestTaskHandler_AssignAndUnassign(t *testing.T) {
	f := setupTaskFixture(t)

	task, err := f.env.taskService.Create(services.CreateTaskInput{
		Description: "hand me around",
		ProjectID:   f.project.ID,
	})
	require.NoError(t, err)

	body := marshalBody(t, map[string]string{
		"id":       fmt.Sprintf("%d", task.ID),
		"assignee": "bob",
	})
	c, w := testContext(http.MethodPost, "/project/task/assignees", body, f.alice.ID)

	f.env.taskHandler.Assign(c)
	require.Equal(t, http.StatusOK, w.Code)

	assigned, err := f.env.taskService.Get(task.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssigneeID)
	require.Equal(t, f.bob.ID, *assigned.AssigneeID)

	linked, err := f.env.assignees.Contains(task.ID, f.bob.ID)
	require.NoError(t, err)
	require.True(t, linked)

	url := fmt.Sprintf("/project/task/assignees?id=%d", task.ID)
	c, w = testContext(http.MethodDelete, url, nil, f.alice.ID)

	f.env.taskHandler.Unassign(c)
	require.Equal(t, http.StatusOK, w.Code)

	unassigned, err := f.env.taskService.Get(task.ID)
	require.NoError(t, err)
	require.Nil(t, unassigned.AssigneeID)

	linked, err = f.env.assignees.Contains(task.ID, f.bob.ID)
	require.NoError(t, err)
	require.False(t, linked)
}

func TestTaskHandler_AssignNonMember(t *testing.T) {
	f := setupTaskFixture(t)

	createTestUser(t, f.env, "carol")

	task, err := f.env.taskService.Create(services.CreateTaskInput{
		Description: "members only",
		ProjectID:   f.project.ID,
	})
	require.NoError(t, err)

	body := marshalBody(t, map[string]string{
		"id":       fmt.Sprintf("%d", task.ID),
		"assignee": "carol",
	})
	c, w := testContext(http.MethodPost, "/project/task/assignees", body, f.alice.ID)

	f.env.taskHandler.Assign(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	f := setupTaskFixture(t)

	task, err := f.env.taskService.Create(services.CreateTaskInput{
		Description: "short lived",
		ProjectID:   f.project.ID,
		AssigneeID:  &f.bob.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.env.assignees.Add(task.ID, f.bob.ID))

	url := fmt.Sprintf("/project/tasks?id=%d", task.ID)
	c, w := testContext(http.MethodDelete, url, nil, f.bob.ID)

	f.env.taskHandler.DeleteTask(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	c, w = testContext(http.MethodDelete, url, nil, f.alice.ID)

	f.env.taskHandler.DeleteTask(c)
	require.Equal(t, http.StatusOK, w.Code)

	_, err = f.env.taskService.Get(task.ID)
	require.ErrorIs(t, err, services.ErrTaskNotFound)

	var rows int64
	require.NoError(t, f.env.db.Table(models.TableTaskAssignees).Where("group_id = ?", task.ID).Count(&rows).Error)
	require.Zero(t, rows)
}

func TestTaskHandler_GetUserTasks(t *testing.T) {
	f := setupTaskFixture(t)

	_, err := f.env.taskService.Create(services.CreateTaskInput{
		Description: "bob's work",
		ProjectID:   f.project.ID,
		AssigneeID:  &f.bob.ID,
	})
	require.NoError(t, err)
	_, err = f.env.taskService.Create(services.CreateTaskInput{
		Description: "nobody's work",
		ProjectID:   f.project.ID,
	})
	require.NoError(t, err)

	c, w := testContext(http.MethodGet, "/user/tasks", nil, f.bob.ID)

	f.env.taskHandler.GetUserTasks(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Tasks, 1)
	require.Equal(t, "bob's work", response.Tasks[0].Description)
	require.NotNil(t, response.Tasks[0].Assignee)
	require.Equal(t, "bob", *response.Tasks[0].Assignee)
}
