package favorite

import (
	"github.com/wichananm65/select-shop-backend/internal/folder"
	"github.com/wichananm65/select-shop-backend/internal/product"
	"github.com/wichananm65/select-shop-backend/internal/user"
)

// Policy decides whether actor may link p into f.
type Policy interface {
	CanAttach(actor user.User, p product.Product, f folder.Folder) bool
}

// OwnerPolicy allows a link only when actor owns both the product and the folder.
type OwnerPolicy struct{}

func (OwnerPolicy) CanAttach(actor user.User, p product.Product, f folder.Folder) bool {
	return p.UserID == actor.ID && f.UserID == actor.ID
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(actor user.User, p product.Product, f folder.Folder) bool

func (fn PolicyFunc) CanAttach(actor user.User, p product.Product, f folder.Folder) bool {
	return fn(actor, p, f)
}
