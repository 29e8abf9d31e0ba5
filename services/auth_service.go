package services

import (
	"blogapp/config"
	"blogapp/global"
	"blogapp/models"
	"blogapp/monitoring"
	"blogapp/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SignUpForm struct {
	Username  string `json:"username" form:"username" binding:"required,min=3,max=150"`
	Password1 string `json:"password1" form:"password1" binding:"required,min=8"`
	Password2 string `json:"password2" form:"password2" binding:"required,eqfield=Password1"`
}

type PasswordChangeForm struct {
	OldPassword  string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword1 string `json:"new_password1" form:"new_password1" binding:"required,min=8"`
	NewPassword2 string `json:"new_password2" form:"new_password2" binding:"required,eqfield=NewPassword1"`
}

func Register(ctx context.Context, form SignUpForm) (*models.User, error) {
	if err := validateForm(&form, "failed to sign up"); err != nil {
		return nil, err
	}

	db := global.Db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", form.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(form.Password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: form.Username, PasswordHash: hash}
	if err := db.Create(user).Error; err != nil {
		// 并发注册时检查已通过，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("user signed up")
	return user, nil
}

func Login(ctx context.Context, username, password string) (string, error) {
	var user models.User
	err := global.Db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.LoginFailure.WithLabelValues("unknown user").Inc()
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		monitoring.LoginFailure.WithLabelValues("wrong password").Inc()
		return "", ErrInvalidCredentials
	}

	return IssueToken(&user)
}

func IssueToken(user *models.User) (string, error) {
	hours := config.AppConfig.Jwt.ExpiresHours
	if hours <= 0 {
		hours = 24
	}
	return utils.GenerateJWT(config.AppConfig.Jwt.Secret, time.Duration(hours)*time.Hour, user.ID, user.Username, user.IsSuperuser)
}

func ChangePassword(ctx context.Context, user *models.User, form PasswordChangeForm) (Result, error) {
	if err := validateForm(&form, "failed to change password"); err != nil {
		return Result{}, err
	}
	if !utils.CheckPassword(form.OldPassword, user.PasswordHash) {
		return Result{}, &ValidationError{
			Notice: "failed to change password",
			Fields: map[string]string{"old_password": "incorrect password"},
		}
	}

	hash, err := utils.HashPassword(form.NewPassword1)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}
	if err := global.Db.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return Result{}, fmt.Errorf("update password of user %d: %w", user.ID, err)
	}
	user.PasswordHash = hash

	logrus.WithField("user_id", user.ID).Info("password changed")
	return success("password changed", "/accounts/password-change/done"), nil
}

// UserByID 供鉴权中间件加载当前用户
func UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := global.Db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &user, nil
}
