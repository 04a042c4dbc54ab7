package migration

import (
	"fmt"
	"time"

	"cyberlab-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// appliedMigration is one row in the ledger.
type appliedMigration struct {
	ID        string    `gorm:"primaryKey"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (appliedMigration) TableName() string { return "schema_migrations" }

type step struct {
	id string
	up func(db *gorm.DB) error
}

// migrations is the single ordered ledger. Steps must stay append-only and
// each step must be safe to re-run.
var migrations = []step{
	{
		id: "0001_core_tables",
		up: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&domain.User{},
				&domain.Course{},
				&domain.Module{},
				&domain.Lab{},
				&domain.Task{},
				&domain.Question{},
			)
		},
	},
	{
		id: "0002_progress_tables",
		up: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&domain.Submission{},
				&domain.LabProgress{},
				&domain.Enrollment{},
			)
		},
	},
	{
		id: "0003_achievement_tables",
		up: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&domain.Achievement{},
				&domain.UserAchievement{},
			)
		},
	},
	{
		id: "0004_seed_achievement_catalog",
		up: seedAchievements,
	},
}

// Run applies every unapplied migration in order, recording each in the
// schema_migrations table.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return fmt.Errorf("failed to prepare migration ledger: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&appliedMigration{}).Where("id = ?", m.id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := m.up(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.id, err)
		}
		if err := db.Create(&appliedMigration{ID: m.id}).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAchievements(db *gorm.DB) error {
	catalog := []domain.Achievement{
		{Key: "first_login", Name: "Welcome Aboard", Description: "Log in for the first time", Points: 10, Rarity: domain.RarityCommon},
		{Key: "first_blood", Name: "First Blood", Description: "Answer your first question correctly", Points: 25, Rarity: domain.RarityCommon},
		{Key: "lab_rookie", Name: "Lab Rookie", Description: "Complete your first lab", Points: 50, Rarity: domain.RarityUncommon},
		{Key: "lab_master", Name: "Lab Master", Description: "Complete ten labs", Points: 200, Rarity: domain.RarityRare},
		{Key: "week_warrior", Name: "Week Warrior", Description: "Log in seven days in a row", Points: 100, Rarity: domain.RarityRare},
		{Key: "point_hunter", Name: "Point Hunter", Description: "Earn 500 points from submissions", Points: 150, Rarity: domain.RarityLegendary},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&catalog).Error
}
