package models

import "time"

type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Preview   string    `gorm:"size:500" json:"preview"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
