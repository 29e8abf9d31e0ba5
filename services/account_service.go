package services

import (
	"blogapp/global"
	"blogapp/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// BlackListEntry 黑名单中的一条：目标用户 id 与用户名
type BlackListEntry struct {
	TargetUserID uint   `json:"target_user_id"`
	Username     string `json:"username"`
}

type AccountDetail struct {
	User      models.User      `json:"user"`
	MixList   []BlackListEntry `json:"mix_list"`
	BlackList []uint           `json:"black_list"`
	Articles  []models.Article `json:"my_article"`
}

// GetAccountDetail 返回 userID 的主页数据；黑名单始终是 requester 自己的
func GetAccountDetail(ctx context.Context, userID uint, requester *models.User) (*AccountDetail, error) {
	db := global.Db.WithContext(ctx)

	var user models.User
	if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	entries := []BlackListEntry{}
	err := db.Table("black_lists").
		Select("black_lists.target_user_id, users.username").
		Joins("JOIN users ON users.id = black_lists.target_user_id").
		Where("black_lists.add_user_id = ?", requester.ID).
		Order("black_lists.id").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load blacklist of user %d: %w", requester.ID, err)
	}

	blackList := make([]uint, 0, len(entries))
	for _, e := range entries {
		blackList = append(blackList, e.TargetUserID)
	}

	articles := []models.Article{}
	err = db.Where("author_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("load articles of user %d: %w", userID, err)
	}

	return &AccountDetail{
		User:      user,
		MixList:   entries,
		BlackList: blackList,
		Articles:  articles,
	}, nil
}
