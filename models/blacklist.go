package models

import "time"

// BlackList 表示 AddUserID 不想看到 TargetUserID
type BlackList struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AddUserID    uint      `gorm:"not null;uniqueIndex:idx_blacklist_pair" json:"add_user_id"`
	TargetUserID uint      `gorm:"not null;uniqueIndex:idx_blacklist_pair" json:"target_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (BlackList) TableName() string {
	return "black_lists"
}
