package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "mixtape.GO/model/entity"
)

type GormDriver struct {
	db *gorm.DB
}

func NewGormDriver(db *gorm.DB) *GormDriver {
	return &GormDriver{db: db}
}

func (d *GormDriver) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var item entity.StorageItem
	err := d.db.WithContext(ctx).Where("`key` = ?", key).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return item.Value, true, nil
}

func (d *GormDriver) Set(ctx context.Context, key string, value []byte) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entity.StorageItem{Key: key, Value: value}).Error
}

func (d *GormDriver) Remove(ctx context.Context, key string) error {
	return d.db.WithContext(ctx).Where("`key` = ?", key).Delete(&entity.StorageItem{}).Error
}
