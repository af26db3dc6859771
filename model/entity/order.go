package entity

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

type ShippingAddress struct {
	FirstName string `gorm:"column:first_name;type:varchar(64)" json:"firstName"`
	LastName  string `gorm:"column:last_name;type:varchar(64)" json:"lastName"`
	Email     string `gorm:"column:email;type:varchar(128);index" json:"email"`
	Phone     string `gorm:"column:phone;type:varchar(32)" json:"phone"`
	Street    string `gorm:"column:street;type:varchar(255)" json:"street"`
	City      string `gorm:"column:city;type:varchar(128)" json:"city"`
	State     string `gorm:"column:state;type:varchar(8)" json:"state"`
	Zip       string `gorm:"column:zip;type:varchar(16)" json:"zip"`
}

// FullName joins first and last name.
func (a ShippingAddress) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

type Order struct {
	ID              uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Number          string          `gorm:"column:number;type:varchar(32);not null;uniqueIndex" json:"number"`
	SessionID       string          `gorm:"column:session_id;type:varchar(64);index" json:"sessionId"`
	Status          OrderStatus     `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"column:payment_method;type:varchar(16);not null" json:"paymentMethod"`
	PaymentLast4    string          `gorm:"column:payment_last4;type:varchar(4)" json:"paymentLast4,omitempty"`
	Subtotal        float64         `gorm:"column:subtotal;type:decimal(12,2);not null" json:"subtotal"`
	Shipping        float64         `gorm:"column:shipping;type:decimal(12,2);not null" json:"shipping"`
	Tax             float64         `gorm:"column:tax;type:decimal(12,2);not null" json:"tax"`
	Total           float64         `gorm:"column:total;type:decimal(12,2);not null" json:"total"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"column:order_id;not null;index" json:"orderId"`
	ProductID uint    `gorm:"column:product_id;not null" json:"productId"`
	Name      string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category  string  `gorm:"column:category;type:varchar(64)" json:"category"`
	Image     string  `gorm:"column:image;type:varchar(512)" json:"image"`
	Price     float64 `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
