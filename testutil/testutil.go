// Package testutil wires the globals to throwaway stores for package tests.
package testutil

import (
	"blogapp/config"
	"blogapp/global"
	"blogapp/models"
	"blogapp/utils"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "test-secret"

// SetupDB 为每个测试打开独立的内存 sqlite 并迁移表结构
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.Jwt.Secret = JWTSecret
	cfg.Jwt.ExpiresHours = 1
	cfg.Cors.AllowOrigins = []string{"http://localhost:5173"}

	prevDB, prevRedis, prevCfg := global.Db, global.RedisDB, config.AppConfig
	global.Db = db
	global.RedisDB = nil
	global.RabbitChannel = nil
	config.AppConfig = cfg

	t.Cleanup(func() {
		sqlDB.Close()
		global.Db, global.RedisDB, config.AppConfig = prevDB, prevRedis, prevCfg
	})
	return db
}

// SetupRedis 启动 miniredis 并挂到 global.RedisDB
func SetupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	global.RedisDB = client
	t.Cleanup(func() {
		client.Close()
		global.RedisDB = nil
	})
	return mr
}

func CreateUser(t *testing.T, db *gorm.DB, username string, superuser bool) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{Username: username, PasswordHash: hash, IsSuperuser: superuser}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func CreateArticle(t *testing.T, db *gorm.DB, id, authorID uint, title string, createdAt time.Time) *models.Article {
	t.Helper()

	a := &models.Article{ID: id, AuthorID: authorID, Title: title, Content: title + " body", CreatedAt: createdAt}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("create article %d: %v", id, err)
	}
	return a
}

func Token(t *testing.T, u *models.User) string {
	t.Helper()

	tok, err := utils.GenerateJWT(JWTSecret, time.Hour, u.ID, u.Username, u.IsSuperuser)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}
