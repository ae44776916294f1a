package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/config"
	"github.com/hanamizu/collab-api/internal/constants"
	"github.com/hanamizu/collab-api/internal/database"
	"github.com/hanamizu/collab-api/internal/handlers"
	"github.com/hanamizu/collab-api/internal/logger"
	"github.com/hanamizu/collab-api/internal/middleware"
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/repository"
	"github.com/hanamizu/collab-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	isProduction := cfg.GinMode == "release"
	zlog := logger.New(cfg.LogLevel, isProduction)
	defer zlog.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			zlog.Fatal("Failed to add indexes", zap.Error(err))
		}
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(zlog), gin.Recovery())

	// Sessions live in Redis when a host is configured, otherwise in a
	// signed cookie.
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err = redisStore.NewStore(10, "tcp", redisAddr, "", "", []byte(cfg.SessionSecret))
		if err != nil {
			zlog.Fatal("Failed to create Redis store", zap.Error(err))
		}
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

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

	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService, authService)
	friendHandler := handlers.NewFriendHandler(friendService, authService)
	projectHandler := handlers.NewProjectHandler(projectService, authService, members)
	taskHandler := handlers.NewTaskHandler(taskService, projectService, authService, members, assignees)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Users and sessions
	r.POST("/users", authHandler.Register)
	r.GET("/users", authHandler.ListUsers)
	r.GET("/users/:username", authHandler.GetUserByUsername)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	auth := r.Group("/", middleware.RequireAuth())
	{
		auth.GET("/session", authHandler.GetSessionUser)
		auth.PATCH("/users/username", authHandler.UpdateUsername)
		auth.PATCH("/users/password", authHandler.UpdatePassword)
		auth.DELETE("/users", authHandler.DeleteUser)

		// Posts
		auth.GET("/posts", postHandler.ListPosts)
		auth.POST("/posts", postHandler.CreatePost)
		auth.PATCH("/posts/:id", postHandler.UpdatePost)
		auth.DELETE("/posts/:id", postHandler.DeletePost)

		// Friends
		auth.GET("/friends", friendHandler.GetFriends)
		auth.DELETE("/friends/:friend", friendHandler.RemoveFriend)
		auth.GET("/friend/requests", friendHandler.GetRequests)
		auth.POST("/friend/requests/:to", friendHandler.SendRequest)
		auth.DELETE("/friend/requests/:to", friendHandler.RemoveRequest)
		auth.PUT("/friend/accept/:from", friendHandler.AcceptRequest)
		auth.PUT("/friend/reject/:from", friendHandler.RejectRequest)

		// Projects and membership
		auth.POST("/projects", projectHandler.CreateProject)
		auth.GET("/projects", projectHandler.ListProjects)
		auth.DELETE("/projects", projectHandler.DeleteProject)
		auth.PATCH("/project/name", projectHandler.RenameProject)
		auth.PATCH("/project/manager", projectHandler.TransferManager)
		auth.GET("/project/members", projectHandler.GetMembers)
		auth.POST("/project/members", projectHandler.AddMember)
		auth.DELETE("/project/members", projectHandler.RemoveMember)

		// Tasks and assignment
		auth.POST("/project/tasks", taskHandler.CreateTask)
		auth.GET("/project/tasks", taskHandler.GetProjectTasks)
		auth.DELETE("/project/tasks", taskHandler.DeleteTask)
		auth.PATCH("/project/tasks", taskHandler.SetCompleted)
		auth.PATCH("/project/task/description", taskHandler.UpdateDescription)
		auth.POST("/project/task/assignees", taskHandler.Assign)
		auth.DELETE("/project/task/assignees", taskHandler.Unassign)

		// Per-user views
		auth.GET("/user/projects", projectHandler.GetUserProjects)
		auth.GET("/user/tasks", taskHandler.GetUserTasks)
	}

	zlog.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
