package models

import "time"

// User & auth related models
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"unique;not null;index"`
	Password  string `gorm:"not null"` // hashé
	Name      string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollectionBlob is one stored collection: a JSON array of entities keyed by
// "{collection}_{userId}". The whole array is replaced on every save, which
// gives last-write-wins semantics for the single local writer this app serves.
type CollectionBlob struct {
	Key       string `gorm:"primaryKey;size:120"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
