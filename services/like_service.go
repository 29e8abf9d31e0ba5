package services

import (
	"blogapp/global"
	"blogapp/models"
	"blogapp/monitoring"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const LikedArticlesPageSize = 5

type LikedArticlesPage struct {
	LikeList    []models.Article `json:"like_list"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	NumPages    int              `json:"num_pages"`
	Total       int64            `json:"total"`
	HasNext     bool             `json:"has_next"`
	HasPrevious bool             `json:"has_previous"`
	// Likes 与 Status 覆盖系统中全部文章，Status 相对于 requester
	Likes  map[uint]int64 `json:"likes"`
	Status map[uint]bool  `json:"status_dic"`
}

func mylikeURL(userID uint) string {
	return accountURL(userID) + "/mylike"
}

// ToggleLike 添加或取消 requester 对文章的点赞
func ToggleLike(ctx context.Context, requester *models.User, articleID uint, action Action) (Result, error) {
	db := global.Db.WithContext(ctx)
	log := logrus.WithFields(logrus.Fields{"user_id": requester.ID, "article_id": articleID})

	switch action {
	case ActionAdd:
		var article models.Article
		if err := db.Select("id").First(&article, articleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Result{}, fmt.Errorf("article %d: %w", articleID, ErrNotFound)
			}
			return Result{}, fmt.Errorf("load article %d: %w", articleID, err)
		}

		like := models.Like{ArticleID: articleID, UserID: requester.ID}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return Result{}, fmt.Errorf("add like: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			refreshLikeCounter(ctx, articleID)
			monitoring.LikeToggles.WithLabelValues(string(ActionAdd)).Inc()
			publishEvent(ctx, EventLikeAdded, requester.ID, articleID)
			log.Info("like added")
		}
		return success("liked", mylikeURL(requester.ID)), nil

	case ActionRemove:
		res := db.Where("article_id = ? AND user_id = ?", articleID, requester.ID).Delete(&models.Like{})
		if res.Error != nil {
			return Result{}, fmt.Errorf("remove like: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return Result{}, fmt.Errorf("like %d on article %d: %w", requester.ID, articleID, ErrNotFound)
		}
		refreshLikeCounter(ctx, articleID)
		monitoring.LikeToggles.WithLabelValues(string(ActionRemove)).Inc()
		publishEvent(ctx, EventLikeRemoved, requester.ID, articleID)
		log.Info("like removed")
		return success("like removed", mylikeURL(requester.ID)), nil
	}

	return Result{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
}

// ListLikedArticles 返回 userID 点赞过的文章（按文章 id 倒序分页），
// 以及全部文章的点赞数和 requester 的点赞状态
func ListLikedArticles(ctx context.Context, userID uint, requester *models.User, page int) (*LikedArticlesPage, error) {
	db := global.Db.WithContext(ctx)

	var total int64
	err := db.Model(&models.Like{}).
		Joins("JOIN articles ON articles.id = likes.article_id").
		Where("likes.user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, fmt.Errorf("count likes of user %d: %w", userID, err)
	}

	numPages := int((total + LikedArticlesPageSize - 1) / LikedArticlesPageSize)
	if numPages == 0 {
		numPages = 1
	}
	if page < 1 || page > numPages {
		return nil, fmt.Errorf("page %d of %d: %w", page, numPages, ErrNotFound)
	}

	likeList := []models.Article{}
	err = db.Select("articles.*").
		Joins("JOIN likes ON likes.article_id = articles.id").
		Where("likes.user_id = ?", userID).
		Order("likes.article_id DESC").
		Limit(LikedArticlesPageSize).
		Offset((page - 1) * LikedArticlesPageSize).
		Find(&likeList).Error
	if err != nil {
		return nil, fmt.Errorf("load liked articles of user %d: %w", userID, err)
	}

	likes, status, err := likeSummary(db, requester.ID)
	if err != nil {
		return nil, err
	}

	return &LikedArticlesPage{
		LikeList:    likeList,
		Page:        page,
		PageSize:    LikedArticlesPageSize,
		NumPages:    numPages,
		Total:       total,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
		Likes:       likes,
		Status:      status,
	}, nil
}

// likeSummary 一次聚合得到每篇文章的点赞数，一次 pluck 得到 requester 的点赞集合
func likeSummary(db *gorm.DB, requesterID uint) (map[uint]int64, map[uint]bool, error) {
	var articleIDs []uint
	if err := db.Model(&models.Article{}).Pluck("id", &articleIDs).Error; err != nil {
		return nil, nil, fmt.Errorf("list article ids: %w", err)
	}

	likes := make(map[uint]int64, len(articleIDs))
	status := make(map[uint]bool, len(articleIDs))
	for _, id := range articleIDs {
		likes[id] = 0
		status[id] = false
	}

	var counts []struct {
		ArticleID uint
		Total     int64
	}
	err := db.Model(&models.Like{}).
		Select("article_id, COUNT(*) AS total").
		Group("article_id").
		Scan(&counts).Error
	if err != nil {
		return nil, nil, fmt.Errorf("aggregate likes: %w", err)
	}
	for _, c := range counts {
		if _, ok := likes[c.ArticleID]; ok {
			likes[c.ArticleID] = c.Total
		}
	}

	var liked []uint
	if err := db.Model(&models.Like{}).Where("user_id = ?", requesterID).Pluck("article_id", &liked).Error; err != nil {
		return nil, nil, fmt.Errorf("list likes of user %d: %w", requesterID, err)
	}
	for _, id := range liked {
		if _, ok := status[id]; ok {
			status[id] = true
		}
	}

	return likes, status, nil
}
