package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds query-path indexes beyond what AutoMigrate declares.
// Postgres only; the pg_indexes lookup keeps reruns idempotent.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"tasks", "idx_tasks_project_completed", "project_id, completed"},
		{"posts", "idx_posts_author_created_at", "author_id, created_at"},
		{"friend_requests", "idx_friend_requests_pair", "from_id, to_id"},
		{"friendships", "idx_friendships_pair", "user1_id, user2_id"},
		{"project_members", "idx_project_members_pair", "group_id, item_id"},
		{"task_assignees", "idx_task_assignees_pair", "group_id, item_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
