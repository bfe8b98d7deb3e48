package models

// OrderItem snapshots a product at purchase time so later catalog edits do not
// rewrite order history.
type OrderItem struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID      int64  `gorm:"column:order_id;not null" json:"-"`
	ProductID    int64  `gorm:"column:product_id;not null" json:"productId"`
	ProductName  string `gorm:"column:product_name;not null" json:"productName"`
	ProductImage string `gorm:"column:product_image" json:"productImage"`
	UnitPrice    int64  `gorm:"column:unit_price;not null" json:"unitPrice"`
	Quantity     int    `gorm:"column:quantity;not null" json:"quantity"`
}
