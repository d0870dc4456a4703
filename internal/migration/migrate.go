package migration

import (
	"fmt"

	"github.com/angple/arena-backend/internal/domain"
	"gorm.io/gorm"
)

// PrimaryModels are the tables of the primary store, in dependency order
func PrimaryModels() []interface{} {
	return []interface{}{
		&domain.Profile{},
		&domain.ForumCategory{},
		&domain.ForumPost{},
		&domain.ForumReply{},
		&domain.ReplyLike{},
		&domain.Activity{},
		&domain.Notification{},
		&domain.Article{},
	}
}

// EventModels are the tables of the event store
func EventModels() []interface{} {
	return []interface{}{
		&domain.Event{},
		&domain.EventTeam{},
		&domain.Team{},
	}
}

// Run migrates the primary store and the event store, then seeds default categories.
// eventDB may be the same handle as db.
func Run(db, eventDB *gorm.DB) error {
	if err := db.AutoMigrate(PrimaryModels()...); err != nil {
		return fmt.Errorf("migrate primary store: %w", err)
	}
	if eventDB == nil {
		eventDB = db
	}
	if err := eventDB.AutoMigrate(EventModels()...); err != nil {
		return fmt.Errorf("migrate event store: %w", err)
	}

	// Seed only an empty table so admin edits survive restarts
	var count int64
	if err := db.Model(&domain.ForumCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return seedCategories(db)
	}
	return nil
}

func seedCategories(db *gorm.DB) error {
	categories := []domain.ForumCategory{
		{Slug: "general", Name: "General", Description: "Anything esports", SortOrder: 1},
		{Slug: "matches", Name: "Match Discussion", Description: "Live threads and post-match talk", SortOrder: 2},
		{Slug: "teams", Name: "Teams & Rosters", Description: "Transfers, rosters and team news", SortOrder: 3},
		{Slug: "looking-for-team", Name: "Looking for Team", Description: "Find players and scrim partners", SortOrder: 4},
		{Slug: "feedback", Name: "Site Feedback", Description: "Bugs and suggestions", SortOrder: 5},
	}
	return db.Create(&categories).Error
}

// TableStatus reports one migrated table
type TableStatus struct {
	Store  string
	Table  string
	Exists bool
	Rows   int64
}

// Status inspects every managed table of both stores
func Status(db, eventDB *gorm.DB) ([]TableStatus, error) {
	if eventDB == nil {
		eventDB = db
	}
	var out []TableStatus
	inspect := func(store string, conn *gorm.DB, models []interface{}) error {
		for _, m := range models {
			stmt := &gorm.Statement{DB: conn}
			if err := stmt.Parse(m); err != nil {
				return err
			}
			st := TableStatus{Store: store, Table: stmt.Schema.Table, Exists: conn.Migrator().HasTable(m)}
			if st.Exists {
				if err := conn.Model(m).Count(&st.Rows).Error; err != nil {
					return fmt.Errorf("count %s: %w", st.Table, err)
				}
			}
			out = append(out, st)
		}
		return nil
	}
	if err := inspect("primary", db, PrimaryModels()); err != nil {
		return nil, err
	}
	if err := inspect("events", eventDB, EventModels()); err != nil {
		return nil, err
	}
	return out, nil
}
