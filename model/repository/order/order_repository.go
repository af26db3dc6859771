package order

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"shopzone.GO/core/apperr"
	"shopzone.GO/model/entity"
	"shopzone.GO/model/repository"
)

// StatusAll disables the status filter in List.
const StatusAll = "all"

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Filter narrows List. Search matches order number, customer name and
// email, case-insensitively.
type Filter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// Create inserts an order together with its items.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	const op = "orders.create"
	fields := map[string]string{}
	if o.Number == "" {
		fields["number"] = "required"
	}
	if !o.Status.Valid() {
		fields["status"] = "unknown status"
	}
	if len(o.Items) == 0 {
		fields["items"] = "at least one item required"
	}
	if len(fields) > 0 {
		return apperr.Validation(op, fields)
	}
	return repository.Err(op, "order", r.db.WithContext(ctx).Create(o).Error)
}

func (r *OrderRepository) Get(ctx context.Context, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		return nil, repository.Err("orders.get", repository.Describe("order", id), err)
	}
	return &o, nil
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.WithContext(ctx).Preload("Items").Where("number = ?", number).First(&o).Error; err != nil {
		return nil, repository.Err("orders.get", repository.Describe("order", number), err)
	}
	return &o, nil
}

// List returns orders newest first.
func (r *OrderRepository) List(ctx context.Context, f Filter) ([]entity.Order, error) {
	const op = "orders.list"
	q := r.db.WithContext(ctx).Model(&entity.Order{}).Preload("Items")
	if f.Status != "" && f.Status != StatusAll {
		if !entity.OrderStatus(f.Status).Valid() {
			return nil, apperr.Invalid(op, "status", "unknown status")
		}
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(strings.ToLower(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(number) LIKE ? OR LOWER(ship_first_name) LIKE ? OR LOWER(ship_last_name) LIKE ? OR LOWER(ship_email) LIKE ?",
			like, like, like, like,
		)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var orders []entity.Order
	err := q.Order("id DESC").Find(&orders).Error
	return orders, repository.Err(op, "orders", err)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error) {
	const op = "orders.update_status"
	if !status.Valid() {
		return nil, apperr.Invalid(op, "status", "unknown status")
	}
	res := r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, repository.Err(op, repository.Describe("order", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(op, repository.Describe("order", id))
	}
	return r.Get(ctx, id)
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).Count(&n).Error
	return n, repository.Err("orders.count", "orders", err)
}

// Revenue sums the totals of all orders that were not cancelled.
func (r *OrderRepository) Revenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("status <> ?", entity.OrderCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, repository.Err("orders.revenue", "orders", err)
}
