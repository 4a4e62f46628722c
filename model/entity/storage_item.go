package entity

import "time"

// StorageItem is one named record of the durable key-value channel.
type StorageItem struct {
	Key       string    `gorm:"column:key;primaryKey;type:varchar(191)"`
	Value     []byte    `gorm:"column:value;type:blob"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StorageItem) TableName() string {
	return "local_storage"
}
