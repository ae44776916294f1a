package services

import (
	"errors"
	"fmt"

	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSelfFriend         = errors.New("cannot befriend yourself")
	ErrAlreadyFriends     = errors.New("users are already friends")
	ErrRequestPending     = errors.New("a friend request between these users is already pending")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrFriendshipNotFound = errors.New("friendship not found")
)

// FriendService handles friend request and friendship business logic.
//
// Per ordered pair the request moves pending -> accepted | rejected; accepting
// creates the symmetric friendship, which either side may remove.
type FriendService struct {
	friendRepo repository.FriendRepository
}

// NewFriendService creates a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
	}
}

// SendRequest creates a pending request from one user to another.
func (s *FriendService) SendRequest(fromID, toID uint64) (*models.FriendRequest, error) {
	if fromID == toID {
		return nil, ErrSelfFriend
	}

	if _, err := s.friendRepo.FindFriendship(fromID, toID); err == nil {
		return nil, ErrAlreadyFriends
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}

	if _, err := s.friendRepo.FindPendingBetween(fromID, toID); err == nil {
		return nil, ErrRequestPending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}

	req := &models.FriendRequest{
		FromID: fromID,
		ToID:   toID,
		Status: models.RequestPending,
	}

	if err := s.friendRepo.CreateRequest(req); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	return req, nil
}

// RemoveRequest withdraws a pending request the caller sent.
func (s *FriendService) RemoveRequest(fromID, toID uint64) error {
	req, err := s.friendRepo.FindPendingFromTo(fromID, toID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to find friend request: %w", err)
	}

	if err := s.friendRepo.DeleteRequest(req.ID); err != nil {
		return fmt.Errorf("failed to remove friend request: %w", err)
	}

	return nil
}

// AcceptRequest accepts a pending request addressed to the caller and creates
// the symmetric friendship.
func (s *FriendService) AcceptRequest(fromID, toID uint64) error {
	req, err := s.friendRepo.FindPendingFromTo(fromID, toID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to find friend request: %w", err)
	}

	req.Status = models.RequestAccepted
	if err := s.friendRepo.UpdateRequest(req); err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	friendship := &models.Friendship{
		User1ID: fromID,
		User2ID: toID,
	}
	if err := s.friendRepo.CreateFriendship(friendship); err != nil {
		return fmt.Errorf("failed to create friendship: %w", err)
	}

	return nil
}

// RejectRequest rejects a pending request addressed to the caller.
func (s *FriendService) RejectRequest(fromID, toID uint64) error {
	req, err := s.friendRepo.FindPendingFromTo(fromID, toID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to find friend request: %w", err)
	}

	req.Status = models.RequestRejected
	if err := s.friendRepo.UpdateRequest(req); err != nil {
		return fmt.Errorf("failed to reject friend request: %w", err)
	}

	return nil
}

// RemoveFriend deletes the friendship between two users, in either orientation.
func (s *FriendService) RemoveFriend(userID, friendID uint64) error {
	friendship, err := s.friendRepo.FindFriendship(userID, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFriendshipNotFound
		}
		return fmt.Errorf("failed to find friendship: %w", err)
	}

	if err := s.friendRepo.DeleteFriendship(friendship.ID); err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}

	return nil
}

// Requests returns every friend request the user sent or received.
func (s *FriendService) Requests(userID uint64) ([]models.FriendRequest, error) {
	requests, err := s.friendRepo.ListRequestsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return requests, nil
}

// Friends returns the IDs of the user's friends.
func (s *FriendService) Friends(userID uint64) ([]uint64, error) {
	friendships, err := s.friendRepo.ListFriendships(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	friends := make([]uint64, 0, len(friendships))
	for _, f := range friendships {
		if f.User1ID == userID {
			friends = append(friends, f.User2ID)
		} else {
			friends = append(friends, f.User1ID)
		}
	}

	return friends, nil
}
