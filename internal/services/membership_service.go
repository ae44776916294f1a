package services

import (
	"errors"
	"fmt"

	"github.com/hanamizu/collab-api/internal/repository"
	"gorm.io/gorm"
)

// ErrNotInGroup is returned when a membership pair is absent.
var ErrNotInGroup = errors.New("item is not in the group")

// MembershipService wraps one generic group-item relation. The application
// constructs it twice: once over project membership, once over task
// assignment.
type MembershipService struct {
	rel repository.GroupItemRepository
}

// NewMembershipService creates a MembershipService over the given relation.
func NewMembershipService(rel repository.GroupItemRepository) *MembershipService {
	return &MembershipService{rel: rel}
}

// Add inserts a membership pair. Duplicates are tolerated.
func (s *MembershipService) Add(groupID, itemID uint64) error {
	if err := s.rel.Add(groupID, itemID); err != nil {
		return fmt.Errorf("failed to add group item: %w", err)
	}
	return nil
}

// Remove deletes a membership pair; the pair must exist.
func (s *MembershipService) Remove(groupID, itemID uint64) error {
	if err := s.Assert(groupID, itemID); err != nil {
		return err
	}

	if err := s.rel.Remove(groupID, itemID); err != nil {
		return fmt.Errorf("failed to remove group item: %w", err)
	}
	return nil
}

// Assert verifies the pair exists, returning ErrNotInGroup otherwise.
func (s *MembershipService) Assert(groupID, itemID uint64) error {
	if _, err := s.rel.Find(groupID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInGroup
		}
		return fmt.Errorf("failed to check group item: %w", err)
	}
	return nil
}

// Contains reports whether the pair exists.
func (s *MembershipService) Contains(groupID, itemID uint64) (bool, error) {
	err := s.Assert(groupID, itemID)
	if errors.Is(err, ErrNotInGroup) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Items returns the item IDs in a group.
func (s *MembershipService) Items(groupID uint64) ([]uint64, error) {
	ids, err := s.rel.ItemsInGroup(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group items: %w", err)
	}
	return ids, nil
}

// Groups returns the group IDs an item belongs to.
func (s *MembershipService) Groups(itemID uint64) ([]uint64, error) {
	ids, err := s.rel.GroupsForItem(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return ids, nil
}

// ClearGroup removes every pair of a group.
func (s *MembershipService) ClearGroup(groupID uint64) error {
	if err := s.rel.DeleteGroup(groupID); err != nil {
		return fmt.Errorf("failed to clear group: %w", err)
	}
	return nil
}

// ClearItem removes an item from every group.
func (s *MembershipService) ClearItem(itemID uint64) error {
	if err := s.rel.DeleteItemEverywhere(itemID); err != nil {
		return fmt.Errorf("failed to clear item: %w", err)
	}
	return nil
}
