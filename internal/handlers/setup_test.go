package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/constants"
	"github.com/hanamizu/collab-api/internal/database"
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/repository"
	"github.com/hanamizu/collab-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB

	authService    *services.AuthService
	postService    *services.PostService
	friendService  *services.FriendService
	projectService *services.ProjectService
	taskService    *services.TaskService
	members        *services.MembershipService
	assignees      *services.MembershipService

	authHandler    *AuthHandler
	postHandler    *PostHandler
	friendHandler  *FriendHandler
	projectHandler *ProjectHandler
	taskHandler    *TaskHandler
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.MigrateAll(db))
	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	memberRepo := repository.NewGroupItemRepository(db, models.TableProjectMembers)
	assigneeRepo := repository.NewGroupItemRepository(db, models.TableTaskAssignees)

	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo)
	friendService := services.NewFriendService(friendRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)
	members := services.NewMembershipService(memberRepo)
	assignees := services.NewMembershipService(assigneeRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:             db,
		authService:    authService,
		postService:    postService,
		friendService:  friendService,
		projectService: projectService,
		taskService:    taskService,
		members:        members,
		assignees:      assignees,
		authHandler:    NewAuthHandler(authService),
		postHandler:    NewPostHandler(postService, authService),
		friendHandler:  NewFriendHandler(friendService, authService),
		projectHandler: NewProjectHandler(projectService, authService, members),
		taskHandler:    NewTaskHandler(taskService, projectService, authService, members, assignees),
	}
}

// testContext builds a gin context with an authenticated caller, the way
// RequireAuth would leave it.
func testContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func createTestUser(t *testing.T, env testEnv, username string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Username: username,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

func marshalBody(t *testing.T, payload any) []byte {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body
}
