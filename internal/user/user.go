package user

import "time"

type Role string

const (
	// RoleUser only sees its own products.
	RoleUser Role = "USER"
	// RoleAdmin sees every user's products.
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        int       `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
