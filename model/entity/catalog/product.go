package catalog

import (
	"time"

	"gorm.io/datatypes"

	"mixtape.GO/core/price"
)

type Variant struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

type Product struct {
	ID          uint                         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string                       `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string                       `gorm:"column:description;type:text" json:"description"`
	Price       string                       `gorm:"column:price;type:varchar(64);not null;default:''" json:"price"`
	ImageURL    string                       `gorm:"column:image_url;type:varchar(1024)" json:"image_url"`
	Gallery     datatypes.JSONSlice[string]  `gorm:"column:gallery" json:"gallery"`
	Variants    datatypes.JSONSlice[Variant] `gorm:"column:variants" json:"variants"`
	BadgeType   *string                      `gorm:"column:badge_type;type:varchar(16)" json:"badge_type"`
	BadgeText   *string                      `gorm:"column:badge_text;type:varchar(64)" json:"badge_text"`
	CreatedAt   time.Time                    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// Badge returns the promotional badge or nil when none is set.
func (p *Product) Badge() *price.Badge {
	if p.BadgeType == nil {
		return nil
	}
	text := ""
	if p.BadgeText != nil {
		text = *p.BadgeText
	}
	return price.NewBadge(*p.BadgeType, text)
}

func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// FindVariant looks up a variant by exact name.
func (p *Product) FindVariant(name string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
