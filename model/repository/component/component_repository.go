package component

import (
	"context"

	"gorm.io/gorm"

	"shopzone.GO/core/apperr"
	"shopzone.GO/model/entity"
	"shopzone.GO/model/repository"
)

type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

var sizes = map[string]bool{"small": true, "medium": true, "large": true}

// Patch holds the fields of an Update; nil fields are left unchanged.
// An empty BackgroundColor clears it.
type Patch struct {
	Title           *string                 `json:"title"`
	Size            *string                 `json:"size"`
	Items           *[]entity.ComponentItem `json:"items"`
	BackgroundColor *string                 `json:"backgroundColor"`
}

func Validate(op string, c *entity.CustomComponent) error {
	fields := map[string]string{}
	if c.Title == "" {
		fields["title"] = "required"
	}
	if !sizes[c.Size] {
		fields["size"] = "must be small, medium or large"
	}
	for _, it := range c.Items {
		if it.Name == "" {
			fields["items"] = "item name required"
			break
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(op, fields)
	}
	return nil
}

func (r *ComponentRepository) List(ctx context.Context) ([]entity.CustomComponent, error) {
	var out []entity.CustomComponent
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, repository.Err("components.list", "components", err)
}

func (r *ComponentRepository) Get(ctx context.Context, id uint) (*entity.CustomComponent, error) {
	var c entity.CustomComponent
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, repository.Err("components.get", repository.Describe("component", id), err)
	}
	return &c, nil
}

func (r *ComponentRepository) Add(ctx context.Context, c *entity.CustomComponent) error {
	const op = "components.add"
	if err := Validate(op, c); err != nil {
		return err
	}
	c.ID = 0
	return repository.Err(op, "component", r.db.WithContext(ctx).Create(c).Error)
}

func (r *ComponentRepository) Update(ctx context.Context, id uint, patch Patch) (*entity.CustomComponent, error) {
	const op = "components.update"
	var out *entity.CustomComponent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c entity.CustomComponent
		if err := tx.First(&c, id).Error; err != nil {
			return repository.Err(op, repository.Describe("component", id), err)
		}
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Size != nil {
			c.Size = *patch.Size
		}
		if patch.Items != nil {
			c.Items = *patch.Items
		}
		if patch.BackgroundColor != nil {
			if *patch.BackgroundColor == "" {
				c.BackgroundColor = nil
			} else {
				bg := *patch.BackgroundColor
				c.BackgroundColor = &bg
			}
		}
		if err := Validate(op, &c); err != nil {
			return err
		}
		if err := tx.Save(&c).Error; err != nil {
			return err
		}
		out = &c
		return nil
	})
	if err != nil {
		return nil, repository.Err(op, repository.Describe("component", id), err)
	}
	return out, nil
}

func (r *ComponentRepository) Remove(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.CustomComponent{}, id)
	if res.Error != nil {
		return repository.Err("components.remove", repository.Describe("component", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("components.remove", repository.Describe("component", id))
	}
	return nil
}

func (r *ComponentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.CustomComponent{}).Count(&n).Error
	return n, repository.Err("components.count", "components", err)
}
