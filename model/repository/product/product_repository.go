package product

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"shopzone.GO/core/apperr"
	"shopzone.GO/model/entity"
	"shopzone.GO/model/repository"
)

type ProductRepository struct {
	db *gorm.DB
}

var (
	productRepoInstance *ProductRepository
	productRepoOnce     sync.Once
)

// GetProductRepository returns a shared repository for the process DB.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	productRepoOnce.Do(func() {
		productRepoInstance = NewProductRepository(db)
	})
	return productRepoInstance
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Patch holds the fields of an Update; nil fields are left unchanged.
type Patch struct {
	Name     *string         `json:"name"`
	Category *string         `json:"category"`
	Price    *float64        `json:"price"`
	Rating   *float64        `json:"rating"`
	Media    *[]entity.Media `json:"media"`
	Featured *bool           `json:"featured"`
	Size     *string         `json:"size"`
}

func (p Patch) apply(dst *entity.Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Rating != nil {
		dst.Rating = *p.Rating
	}
	if p.Media != nil {
		dst.Media = *p.Media
	}
	if p.Featured != nil {
		dst.Featured = *p.Featured
	}
	if p.Size != nil {
		dst.Size = *p.Size
	}
}

// Validate checks a product before it is written.
func Validate(op string, p *entity.Product) error {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "required"
	}
	if !entity.IsCategory(p.Category) {
		fields["category"] = "unknown category"
	}
	if p.Price < 0 {
		fields["price"] = "must be >= 0"
	}
	if p.Rating < 0 || p.Rating > 5 {
		fields["rating"] = "must be between 0 and 5"
	}
	if len(p.Media) == 0 {
		fields["media"] = "at least one item required"
	}
	for _, m := range p.Media {
		if m.Type != entity.MediaImage && m.Type != entity.MediaVideo {
			fields["media"] = "type must be image or video"
			break
		}
		if m.URL == "" {
			fields["media"] = "url required"
			break
		}
	}
	if !entity.IsSize(p.Size) {
		fields["size"] = "unknown size"
	}
	if len(fields) > 0 {
		return apperr.Validation(op, fields)
	}
	return nil
}

// List returns all products in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, repository.Err("products.list", "products", err)
}

// ListByIDs returns the products with the given ids, in id order.
func (r *ProductRepository) ListByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&products).Error
	return products, repository.Err("products.list", "products", err)
}

func (r *ProductRepository) Get(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, repository.Err("products.get", repository.Describe("product", id), err)
	}
	return &p, nil
}

// Add validates and inserts p; ID and timestamps are filled in.
func (r *ProductRepository) Add(ctx context.Context, p *entity.Product) error {
	const op = "products.add"
	if err := Validate(op, p); err != nil {
		return err
	}
	p.ID = 0
	return repository.Err(op, "product", r.db.WithContext(ctx).Create(p).Error)
}

// AddBatch inserts products in batches inside one transaction.
func (r *ProductRepository) AddBatch(ctx context.Context, products []entity.Product, batchSize int) error {
	const op = "products.add_batch"
	for i := range products {
		if err := Validate(op, &products[i]); err != nil {
			return err
		}
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(products, batchSize).Error
	})
	return repository.Err(op, "products", err)
}

// Update applies patch to product id and returns the stored row.
func (r *ProductRepository) Update(ctx context.Context, id uint, patch Patch) (*entity.Product, error) {
	const op = "products.update"
	var out *entity.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entity.Product
		if err := tx.First(&p, id).Error; err != nil {
			return repository.Err(op, repository.Describe("product", id), err)
		}
		patch.apply(&p)
		if err := Validate(op, &p); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, repository.Err(op, repository.Describe("product", id), err)
	}
	return out, nil
}

func (r *ProductRepository) Remove(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Product{}, id)
	if res.Error != nil {
		return repository.Err("products.remove", repository.Describe("product", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("products.remove", repository.Describe("product", id))
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&n).Error
	return n, repository.Err("products.count", "products", err)
}
