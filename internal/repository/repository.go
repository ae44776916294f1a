package repository

import (
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByIDs(ids []uint64) ([]models.User, error)
	FindByUsername(username string) (*models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
	Delete(id uint64) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id uint64) (*models.Post, error)
	List(params utils.PaginationParams) ([]models.Post, int64, error)
	ListByAuthor(authorID uint64, params utils.PaginationParams) ([]models.Post, int64, error)
	Update(post *models.Post) error
	Delete(id uint64) error
}

// FriendRepository defines the interface for friend request and friendship data access
type FriendRepository interface {
	CreateRequest(req *models.FriendRequest) error

	// FindPendingBetween finds a pending request between two users in either direction.
	FindPendingBetween(userA, userB uint64) (*models.FriendRequest, error)

	// FindPendingFromTo finds a pending request in the given direction only.
	FindPendingFromTo(from, to uint64) (*models.FriendRequest, error)

	UpdateRequest(req *models.FriendRequest) error
	DeleteRequest(id uint64) error
	ListRequestsForUser(userID uint64) ([]models.FriendRequest, error)

	CreateFriendship(f *models.Friendship) error

	// FindFriendship finds the symmetric pair row regardless of orientation.
	FindFriendship(userA, userB uint64) (*models.Friendship, error)

	DeleteFriendship(id uint64) error
	ListFriendships(userID uint64) ([]models.Friendship, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64) (*models.Project, error)
	FindByName(name string) (*models.Project, error)
	FindByIDs(ids []uint64) ([]models.Project, error)
	List(params utils.PaginationParams) ([]models.Project, int64, error)
	Update(project *models.Project) error

	// Delete removes the project and everything hanging off it in one
	// transaction: membership links, assignee links of its tasks, the tasks,
	// then the project row.
	Delete(id uint64) error
}

// GroupItemRepository is the generic membership-pair relation. One
// implementation is instantiated per relation table: project membership
// (group=project, item=user) and task assignment (group=task, item=user).
type GroupItemRepository interface {
	Add(groupID, itemID uint64) error
	Remove(groupID, itemID uint64) error
	Find(groupID, itemID uint64) (*models.GroupItem, error)
	ItemsInGroup(groupID uint64) ([]uint64, error)
	GroupsForItem(itemID uint64) ([]uint64, error)
	DeleteGroup(groupID uint64) error
	DeleteItemEverywhere(itemID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uint64, preload ...string) (*models.Task, error)
	ListForProject(projectID uint64) ([]models.Task, error)
	ListForAssignee(userID uint64) ([]models.Task, error)
	Update(task *models.Task) error

	// Delete removes the task together with its assignee links.
	Delete(id uint64) error
}
