package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Group{},
		&GroupMembership{},
		&User{},
		&StepRecord{},
	); err != nil {
		return err
	}

	// One membership row per (group, user), only enforced on non-soft-deleted rows.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_group_user " +
			"ON group_memberships (group_id, user_id) WHERE deleted_at IS NULL",
	).Error; err != nil {
		return err
	}

	// Join codes are globally unique among live private groups.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_groups_join_code " +
			"ON groups (join_code) WHERE deleted_at IS NULL AND join_code IS NOT NULL",
	).Error; err != nil {
		return err
	}

	// One step record per user per calendar day.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_step_records_user_date " +
			"ON step_records (user_id, date)",
	).Error
}
