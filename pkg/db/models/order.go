package models

import (
	"time"

	"github.com/nvteo/bakeshop-backend/pkg/enums"
)

// Order is a placed storefront order with its line item snapshots.
type Order struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID          int64             `gorm:"column:user_id;not null" json:"-"`
	User            *User             `gorm:"foreignKey:UserID" json:"-"`
	CustomerName    string            `gorm:"column:customer_name;not null" json:"customerName"`
	CustomerEmail   string            `gorm:"column:customer_email" json:"customerEmail"`
	ShippingAddress string            `gorm:"column:shipping_address;not null" json:"shippingAddress"`
	PhoneNumber     string            `gorm:"column:phone_number;not null" json:"phoneNumber"`
	TotalAmount     int64             `gorm:"column:total_amount;not null" json:"totalAmount"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'Pending'" json:"status"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	OrderDate       time.Time         `gorm:"column:order_date;autoCreateTime" json:"orderDate"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
