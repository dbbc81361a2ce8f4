package domain

import "time"

// CartItem is a single product line in a user's cart.
type CartItem struct {
	ProductID string `json:"_id" bson:"product_id" validate:"required"`
	Quantity  int    `json:"qty" bson:"qty" validate:"gte=1"`
}

// User is the storefront account record. Password holds whatever the
// configured password scheme produced at write time.
type User struct {
	ID        string     `json:"_id" bson:"_id" validate:"required"`
	Email     string     `json:"email" bson:"email" validate:"required"`
	Password  string     `json:"password" bson:"password" validate:"required"`
	FirstName string     `json:"firstName" bson:"first_name" validate:"required"`
	LastName  string     `json:"lastName" bson:"last_name"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at" validate:"required"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at" validate:"required"`
	Cart      []CartItem `json:"cart" bson:"cart" validate:"dive"`
	Wishlist  []string   `json:"wishlist" bson:"wishlist"`
}

// PublicUser is a User without its password, as returned by login.
type PublicUser struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Cart      []CartItem `json:"cart"`
	Wishlist  []string   `json:"wishlist"`
}

// NewUser builds a fresh record with empty cart and wishlist.
func NewUser(id, email, password, firstName, lastName string, now time.Time) *User {
	// Stores keep milliseconds.
	now = now.UTC().Truncate(time.Millisecond)
	return &User{
		ID:        id,
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
		Cart:      []CartItem{},
		Wishlist:  []string{},
	}
}

// Public strips the password.
func (u *User) Public() *PublicUser {
	cart := u.Cart
	if cart == nil {
		cart = []CartItem{}
	}
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Cart:      cart,
		Wishlist:  wishlist,
	}
}
