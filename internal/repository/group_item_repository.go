package repository

import (
	"github.com/hanamizu/collab-api/internal/models"
	"gorm.io/gorm"
)

// GormGroupItemRepository maps the GroupItem model onto one relation table.
// The same implementation serves project membership and task assignment; only
// the table name differs.
type GormGroupItemRepository struct {
	db    *gorm.DB
	table string
}

// NewGroupItemRepository creates a GroupItemRepository over the given table.
func NewGroupItemRepository(db *gorm.DB, table string) GroupItemRepository {
	return &GormGroupItemRepository{db: db, table: table}
}

// Add inserts a membership pair. Duplicate pairs are tolerated.
func (r *GormGroupItemRepository) Add(groupID, itemID uint64) error {
	item := models.GroupItem{GroupID: groupID, ItemID: itemID}
	return r.db.Table(r.table).Create(&item).Error
}

// Remove deletes all rows for the pair
func (r *GormGroupItemRepository) Remove(groupID, itemID uint64) error {
	return r.db.Table(r.table).
		Where("group_id = ? AND item_id = ?", groupID, itemID).
		Delete(&models.GroupItem{}).Error
}

// Find returns one row for the pair, or gorm.ErrRecordNotFound
func (r *GormGroupItemRepository) Find(groupID, itemID uint64) (*models.GroupItem, error) {
	var item models.GroupItem
	err := r.db.Table(r.table).
		Where("group_id = ? AND item_id = ?", groupID, itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemsInGroup returns the item IDs in a group, projected from the pair rows
func (r *GormGroupItemRepository) ItemsInGroup(groupID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Table(r.table).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GroupsForItem returns the group IDs an item belongs to
func (r *GormGroupItemRepository) GroupsForItem(itemID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Table(r.table).
		Where("item_id = ?", itemID).
		Order("id ASC").
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteGroup removes every row of a group
func (r *GormGroupItemRepository) DeleteGroup(groupID uint64) error {
	return r.db.Table(r.table).
		Where("group_id = ?", groupID).
		Delete(&models.GroupItem{}).Error
}

// DeleteItemEverywhere removes an item from every group
func (r *GormGroupItemRepository) DeleteItemEverywhere(itemID uint64) error {
	return r.db.Table(r.table).
		Where("item_id = ?", itemID).
		Delete(&models.GroupItem{}).Error
}
