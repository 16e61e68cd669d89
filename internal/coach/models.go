package coach

import (
	"time"
)

// Goal is a user-defined to-do item with a completion flag.
type Goal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Completed bool      `json:"completed" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// Routine is a recurring habit tracked by an incrementing counter.
// Count never goes below zero; resets set it back to zero.
type Routine struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Count     int       `json:"count" gorm:"default:0;check:count >= 0"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalEntry is a free-text diary record tagged with an emotion label.
type JournalEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	EntryText string    `json:"entry_text" gorm:"not null"`
	Emotion   string    `json:"emotion" gorm:"size:16;default:'N/A'"`
	CreatedAt time.Time `json:"created_at"`
}
