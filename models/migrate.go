package models

import (
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Profile{}, &Article{}, &Like{}, &BlackList{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
