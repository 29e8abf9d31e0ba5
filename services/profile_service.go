package services

import (
	"blogapp/global"
	"blogapp/models"
	"blogapp/monitoring"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProfileForm struct {
	DisplayName string `json:"display_name" form:"display_name" binding:"required,max=50"`
	Bio         string `json:"bio" form:"bio" binding:"max=1000"`
	Location    string `json:"location" form:"location" binding:"max=100"`
	Website     string `json:"website" form:"website" binding:"omitempty,url,max=200"`
}

func (f ProfileForm) apply(p *models.Profile) {
	p.DisplayName = f.DisplayName
	p.Bio = f.Bio
	p.Location = f.Location
	p.Website = f.Website
}

func FormFromProfile(p *models.Profile) ProfileForm {
	return ProfileForm{
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		Location:    p.Location,
		Website:     p.Website,
	}
}

// CanEditProfile 本人或超级用户才能编辑
func CanEditProfile(user *models.User, profile *models.Profile) bool {
	return user != nil && (profile.UserID == user.ID || user.IsSuperuser)
}

func profileExists(db *gorm.DB, userID uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CheckCreateProfile 在展示或提交新建表单前检查权限
func CheckCreateProfile(ctx context.Context, targetUserID uint, requester *models.User) error {
	db := global.Db.WithContext(ctx)

	exists, err := profileExists(db, targetUserID)
	if err != nil {
		return fmt.Errorf("check profile of user %d: %w", targetUserID, err)
	}
	if exists {
		return denied("profile already registered")
	}

	owns, err := profileExists(db, requester.ID)
	if err != nil {
		return fmt.Errorf("check profile of user %d: %w", requester.ID, err)
	}
	if owns {
		return denied("you cannot register this profile")
	}
	return nil
}

// CreateProfile 新建的 profile 总是绑定到 requester，而不是 targetUserID
func CreateProfile(ctx context.Context, targetUserID uint, requester *models.User, form ProfileForm) (*models.Profile, Result, error) {
	if err := CheckCreateProfile(ctx, targetUserID, requester); err != nil {
		return nil, Result{}, err
	}
	if err := validateForm(&form, "failed to register profile"); err != nil {
		return nil, Result{}, err
	}

	profile := &models.Profile{UserID: requester.ID}
	form.apply(profile)
	if err := global.Db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Result{}, denied("profile already registered")
		}
		return nil, Result{}, fmt.Errorf("create profile for user %d: %w", requester.ID, err)
	}

	monitoring.ProfilesCreated.Inc()
	logrus.WithFields(logrus.Fields{"user_id": requester.ID, "profile_id": profile.ID}).Info("profile registered")

	return profile, success("profile registered", accountURL(requester.ID)), nil
}

// LoadProfileForUpdate 返回可由 requester 编辑的 profile
func LoadProfileForUpdate(ctx context.Context, profileID uint, requester *models.User) (*models.Profile, error) {
	var profile models.Profile
	err := global.Db.WithContext(ctx).First(&profile, profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, denied("profile not registered yet")
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %d: %w", profileID, err)
	}

	if !CanEditProfile(requester, &profile) {
		return nil, denied("you cannot edit this profile")
	}
	return &profile, nil
}

func UpdateProfile(ctx context.Context, profileID uint, requester *models.User, form ProfileForm) (*models.Profile, Result, error) {
	profile, err := LoadProfileForUpdate(ctx, profileID, requester)
	if err != nil {
		return nil, Result{}, err
	}
	if err := validateForm(&form, "update failed"); err != nil {
		return nil, Result{}, err
	}

	form.apply(profile)
	err = global.Db.WithContext(ctx).
		Model(profile).
		Select("DisplayName", "Bio", "Location", "Website", "UpdatedAt").
		Updates(profile).Error
	if err != nil {
		return nil, Result{}, fmt.Errorf("update profile %d: %w", profileID, err)
	}

	logrus.WithFields(logrus.Fields{"profile_id": profile.ID, "editor_id": requester.ID}).Info("profile updated")
	return profile, success("updated", accountURL(profile.UserID)), nil
}

func accountURL(userID uint) string {
	return "/accounts/" + strconv.FormatUint(uint64(userID), 10)
}
