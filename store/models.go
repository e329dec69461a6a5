package store

import "time"

// User is a catalog account row. Distinct from the in-memory credential
// store used by the auth flows.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:32;uniqueIndex;not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`

	Profile *Profile `json:"profile,omitempty"`
	Posts   []Post   `json:"posts,omitempty"`
}

// Profile is a one-to-one extension of User.
type Profile struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName string  `gorm:"size:40" json:"first_name"`
	LastName  string  `gorm:"size:40" json:"last_name"`
	Bio       *string `json:"bio,omitempty"`
}

// Post belongs to a User.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"size:100;not null" json:"title"`
	Body   string `gorm:"not null;default:''" json:"body"`
	UserID uint   `gorm:"not null;index" json:"user_id"`

	User *User `json:"user,omitempty"`
}

// Product is a purchasable item.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Price       int    `gorm:"not null" json:"price"`
}

// Order groups products via OrderProduct associations.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Promocode *string   `json:"promocode,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Products []OrderProduct `json:"products,omitempty"`
}

// OrderProduct is the order/product association. Each product may appear
// in an order at most once; quantity lives in Count, the price paid in
// UnitPrice.
type OrderProduct struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"not null;uniqueIndex:idx_order_product" json:"order_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_order_product" json:"product_id"`
	Count     int  `gorm:"not null;default:1" json:"count"`
	UnitPrice int  `gorm:"not null;default:0" json:"unit_price"`

	Product *Product `json:"product,omitempty"`
}
