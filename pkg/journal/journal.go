// Package journal keeps a history of recorded events in a SQLite database.
// The history is informational; saves remain the source of truth for scores.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FileName is the journal database inside the data directory.
const FileName = "journal.db"

// Event is one recorded goal event that earned points.
type Event struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	SaveName  string    `gorm:"index;not null" json:"save"`
	Goal      string    `gorm:"not null" json:"goal"`
	Kind      string    `gorm:"not null" json:"kind"`
	Awarded   int       `json:"awarded"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Badge     string    `json:"badge,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// BeforeCreate assigns an ID to new events.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Journal appends and queries events.
type Journal struct {
	db *gorm.DB
}

// Open opens (and migrates) the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if err := db.AutoMigrate(&Event{}); err != nil {
		return nil, fmt.Errorf("migrating journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Append stores an event. CreatedAt defaults to now.
func (j *Journal) Append(ev *Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	if err := j.db.Create(ev).Error; err != nil {
		return fmt.Errorf("appending journal event: %w", err)
	}
	return nil
}

// Recent returns up to limit events for a save, newest first. An empty save matches all.
func (j *Journal) Recent(save string, limit int) ([]Event, error) {
	q := j.db.Order("created_at desc")
	if save != "" {
		q = q.Where("save_name = ?", save)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []Event
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	return events, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
