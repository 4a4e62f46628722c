package catalog

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "mixtape.GO/model/entity/catalog"
)

type ProductRepository struct {
	db *gorm.DB
}

var (
	productRepoInstance *ProductRepository
	productRepoOnce     sync.Once
)

// GetProductRepository returns the repository bound to the first db it is called with.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	productRepoOnce.Do(func() {
		productRepoInstance = NewProductRepository(db)
	})
	return productRepoInstance
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) DB() *gorm.DB {
	return r.db
}

// FindAll returns every product ordered by id.
func (r *ProductRepository) FindAll(ctx context.Context) ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

// FindByID returns gorm.ErrRecordNotFound when the id is unknown.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs keeps the order of ids and skips unknown ones.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]catalogEntity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []catalogEntity.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]catalogEntity.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]catalogEntity.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchByTitle is a case-insensitive substring match.
func (r *ProductRepository) SearchByTitle(ctx context.Context, q string) ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", like).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) Create(ctx context.Context, p *catalogEntity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *catalogEntity.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Upsert inserts or overwrites by primary key. Used by the CSV import.
func (r *ProductRepository) Upsert(ctx context.Context, p *catalogEntity.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "price", "image_url", "gallery", "variants", "badge_type", "badge_text", "updated_at"}),
	}).Create(p).Error
}

// Delete reports gorm.ErrRecordNotFound when nothing was removed.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&catalogEntity.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalogEntity.Product{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
