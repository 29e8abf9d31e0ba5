package services

import (
	"blogapp/global"
	"blogapp/models"
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
)

const (
	rankKey       = "rank:article:likes"
	rankSeededKey = "rank:article:likes:seeded"

	refreshAttempts = 5
)

func likeKey(articleID uint) string {
	return "article:" + strconv.FormatUint(uint64(articleID), 10) + ":likes"
}

type RankedArticle struct {
	ID    uint   `json:"id"`
	Score int64  `json:"score"`
	Rank  int    `json:"rank"`
	Title string `json:"title,omitempty"`
}

func countLikesInDB(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	err := global.Db.WithContext(ctx).Model(&models.Like{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}

// refreshLikeCounter 用数据库中的真实点赞数覆盖 Redis 计数和排行。
// 计数在 WATCH 之后读取，期间若有其他写入则 EXEC 失败并重新计数，旧值不会覆盖新值
func refreshLikeCounter(ctx context.Context, articleID uint) {
	if global.RedisDB == nil {
		return
	}

	key := likeKey(articleID)
	member := strconv.FormatUint(uint64(articleID), 10)
	write := func(tx *redis.Tx) error {
		count, err := countLikesInDB(ctx, articleID)
		if err != nil {
			return fmt.Errorf("count likes for cache: %w", err)
		}
		_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
			pipe.Set(key, count, 0)
			if count > 0 {
				pipe.ZAdd(rankKey, redis.Z{Score: float64(count), Member: member})
			} else {
				pipe.ZRem(rankKey, member)
			}
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < refreshAttempts; i++ {
		err = global.RedisDB.Watch(write, key)
		if err != redis.TxFailedErr {
			break
		}
	}
	if err != nil {
		logrus.WithError(err).WithField("article_id", articleID).Warn("update like counter")
	}
}

// seedRanking 用数据库聚合补齐排行，只在首次读取排行时执行一次。
// ZADD NX 不会覆盖切换点赞时已写入的分数
func seedRanking(ctx context.Context) error {
	seeded, err := global.RedisDB.Exists(rankSeededKey).Result()
	if err != nil {
		return fmt.Errorf("check ranking seed: %w", err)
	}
	if seeded > 0 {
		return nil
	}

	rows, err := aggregateLikes(ctx, 0)
	if err != nil {
		return err
	}
	pipe := global.RedisDB.TxPipeline()
	if len(rows) > 0 {
		members := make([]redis.Z, 0, len(rows))
		for _, r := range rows {
			members = append(members, redis.Z{Score: float64(r.Total), Member: strconv.FormatUint(uint64(r.ArticleID), 10)})
		}
		pipe.ZAddNX(rankKey, members...)
	}
	pipe.Set(rankSeededKey, 1, 0)
	if _, err := pipe.Exec(); err != nil {
		return fmt.Errorf("seed like ranking: %w", err)
	}
	logrus.WithField("articles", len(rows)).Info("like ranking seeded from database")
	return nil
}

type likeTotal struct {
	ArticleID uint
	Total     int64
}

// aggregateLikes 按点赞数倒序统计，limit <= 0 时不限条数
func aggregateLikes(ctx context.Context, limit int) ([]likeTotal, error) {
	var rows []likeTotal
	q := global.Db.WithContext(ctx).Model(&models.Like{}).
		Select("article_id, COUNT(*) AS total").
		Group("article_id").
		Order("total DESC").
		Order("article_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate like ranking: %w", err)
	}
	return rows, nil
}

// ArticleLikes 先读 Redis，未命中时回源数据库并回填
func ArticleLikes(ctx context.Context, articleID uint) (int64, error) {
	if global.RedisDB != nil {
		n, err := global.RedisDB.Get(likeKey(articleID)).Int64()
		if err == nil {
			return n, nil
		}
		if err != redis.Nil {
			logrus.WithError(err).WithField("article_id", articleID).Warn("read like counter")
		}
	}

	count, err := countLikesInDB(ctx, articleID)
	if err != nil {
		return 0, fmt.Errorf("count likes of article %d: %w", articleID, err)
	}
	if global.RedisDB != nil {
		if err := global.RedisDB.Set(likeKey(articleID), count, 0).Err(); err != nil {
			logrus.WithError(err).Warn("backfill like counter")
		}
	}
	return count, nil
}

// TopArticles 返回点赞数前 n 的文章；没有 Redis 时直接用数据库聚合
func TopArticles(ctx context.Context, n int) ([]RankedArticle, error) {
	list := []RankedArticle{}

	if global.RedisDB != nil {
		if err := seedRanking(ctx); err != nil {
			return nil, err
		}
		zres, err := global.RedisDB.ZRevRangeWithScores(rankKey, 0, int64(n-1)).Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("read like ranking: %w", err)
		}
		for idx, z := range zres {
			memberStr, _ := z.Member.(string)
			id, err := strconv.ParseUint(memberStr, 10, 64)
			if err != nil {
				continue
			}
			list = append(list, RankedArticle{ID: uint(id), Score: int64(z.Score), Rank: idx + 1})
		}
	} else {
		rows, err := aggregateLikes(ctx, n)
		if err != nil {
			return nil, err
		}
		for idx, r := range rows {
			list = append(list, RankedArticle{ID: r.ArticleID, Score: r.Total, Rank: idx + 1})
		}
	}

	if len(list) == 0 {
		return list, nil
	}

	ids := make([]uint, 0, len(list))
	for _, item := range list {
		ids = append(ids, item.ID)
	}
	var articles []models.Article
	if err := global.Db.WithContext(ctx).Select("id", "title").Where("id IN ?", ids).Find(&articles).Error; err != nil {
		logrus.WithError(err).Warn("load titles for ranking")
		return list, nil
	}
	titles := make(map[uint]string, len(articles))
	for _, a := range articles {
		titles[a.ID] = a.Title
	}
	for i := range list {
		list[i].Title = titles[list[i].ID]
	}
	return list, nil
}
