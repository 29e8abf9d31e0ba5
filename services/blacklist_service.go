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

// ToggleBlacklist 添加或移除 requester -> targetUserID 的黑名单记录
func ToggleBlacklist(ctx context.Context, requester *models.User, targetUserID uint, action Action) (Result, error) {
	db := global.Db.WithContext(ctx)
	log := logrus.WithFields(logrus.Fields{"user_id": requester.ID, "target_user_id": targetUserID})

	switch action {
	case ActionAdd:
		var target models.User
		if err := db.Select("id").First(&target, targetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Result{}, fmt.Errorf("user %d: %w", targetUserID, ErrNotFound)
			}
			return Result{}, fmt.Errorf("load user %d: %w", targetUserID, err)
		}

		entry := models.BlackList{AddUserID: requester.ID, TargetUserID: targetUserID}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		if res.Error != nil {
			return Result{}, fmt.Errorf("add blacklist entry: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			monitoring.BlacklistToggles.WithLabelValues(string(ActionAdd)).Inc()
			publishEvent(ctx, EventBlacklistAdded, requester.ID, targetUserID)
			log.Info("blacklist entry added")
		}
		return success("added to blacklist", accountURL(requester.ID)), nil

	case ActionRemove:
		res := db.Where("add_user_id = ? AND target_user_id = ?", requester.ID, targetUserID).
			Delete(&models.BlackList{})
		if res.Error != nil {
			return Result{}, fmt.Errorf("remove blacklist entry: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return Result{}, fmt.Errorf("blacklist entry %d->%d: %w", requester.ID, targetUserID, ErrNotFound)
		}
		monitoring.BlacklistToggles.WithLabelValues(string(ActionRemove)).Inc()
		publishEvent(ctx, EventBlacklistRemoved, requester.ID, targetUserID)
		log.Info("blacklist entry removed")
		return success("removed from blacklist", accountURL(requester.ID)), nil
	}

	return Result{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
}
