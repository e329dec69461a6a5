package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/kbukum/webdemo/errors"
)

// Repository provides catalog persistence operations on top of DB.
type Repository struct {
	db *DB
}

// NewRepository creates a Repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a catalog user. Duplicate usernames produce ALREADY_EXISTS.
func (r *Repository) CreateUser(ctx context.Context, username string) (*User, error) {
	user := &User{Username: username}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.AlreadyExists("user")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return user, nil
}

// GetUserByUsername fetches a user by its unique username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", username)
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &user, nil
}

// ListUsers returns all users with their profiles preloaded.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Preload("Profile").Order("id").Find(&users).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return users, nil
}

// UserWithProfileAndPosts fetches a user with profile and posts preloaded.
func (r *Repository) UserWithProfileAndPosts(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Posts").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", username)
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &user, nil
}

// CreateProfile attaches a profile to a user. A second profile for the same
// user produces ALREADY_EXISTS.
func (r *Repository) CreateProfile(ctx context.Context, userID uint, firstName, lastName string, bio *string) (*Profile, error) {
	profile := &Profile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Bio:       bio,
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.AlreadyExists("profile")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return profile, nil
}

// CreatePosts inserts a batch of posts for one user in a single transaction.
func (r *Repository) CreatePosts(ctx context.Context, userID uint, posts []Post) ([]Post, error) {
	for i := range posts {
		posts[i].UserID = userID
	}
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&posts).Error
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return posts, nil
}

// PostsWithAuthor returns all posts with their author preloaded.
func (r *Repository) PostsWithAuthor(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&posts).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return posts, nil
}

// CreateProduct inserts a product.
func (r *Repository) CreateProduct(ctx context.Context, name, description string, price int) (*Product, error) {
	product := &Product{Name: name, Description: description, Price: price}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return product, nil
}

// ListProducts returns all products.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return products, nil
}

// CreateOrder inserts an order with an optional promocode.
func (r *Repository) CreateOrder(ctx context.Context, promocode *string) (*Order, error) {
	order := &Order{Promocode: promocode}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return order, nil
}

// AddProductToOrder associates a product with an order. A product may appear
// in an order at most once; a duplicate produces CONFLICT.
func (r *Repository) AddProductToOrder(ctx context.Context, orderID, productID uint, count, unitPrice int) (*OrderProduct, error) {
	assoc := &OrderProduct{
		OrderID:   orderID,
		ProductID: productID,
		Count:     count,
		UnitPrice: unitPrice,
	}
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var order Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		var product Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}
		return tx.Create(assoc).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order or product", fmt.Sprintf("%d/%d", orderID, productID))
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict(fmt.Sprintf("product %d is already in order %d", productID, orderID))
		}
		return nil, apperrors.DatabaseError(err)
	}
	return assoc, nil
}

// OrdersWithProductDetails returns all orders with their product associations
// and the products themselves preloaded.
func (r *Repository) OrdersWithProductDetails(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_products.id")
		}).
		Preload("Products.Product").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return orders, nil
}
