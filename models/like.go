package models

import "time"

// Like 表示用户对文章的点赞记录，(user_id, article_id) 唯一
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_like_user_article;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
