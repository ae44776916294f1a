package models

import "time"

// Relation tables backed by GroupItem. The same struct is mapped onto both:
// project membership uses group=project/item=user, task assignment uses
// group=task/item=user.
const (
	TableProjectMembers = "project_members"
	TableTaskAssignees  = "task_assignees"
)

// GroupItem is one membership pair in a generic many-to-many relation.
// Duplicate pairs are tolerated; rows are hard-deleted.
type GroupItem struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	GroupID   uint64    `gorm:"not null;index" json:"group_id"`
	ItemID    uint64    `gorm:"not null;index" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
