package models

import "time"

// Profile 是 User 的一对一扩展
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	DisplayName string    `gorm:"size:50" json:"display_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Location    string    `gorm:"size:100" json:"location"`
	Website     string    `gorm:"size:200" json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
