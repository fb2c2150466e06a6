package favorite

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/wichananm65/select-shop-backend/internal/apperr"
	"github.com/wichananm65/select-shop-backend/internal/database"
	"github.com/wichananm65/select-shop-backend/internal/folder"
	"github.com/wichananm65/select-shop-backend/internal/logging"
	"github.com/wichananm65/select-shop-backend/internal/pagination"
	"github.com/wichananm65/select-shop-backend/internal/product"
	"github.com/wichananm65/select-shop-backend/internal/user"
)

// MinMyPrice is the lowest target price a user may set.
const MinMyPrice = 100

var myPriceRule = validation.Min(MinMyPrice).Error(fmt.Sprintf("my price must be at least %d", MinMyPrice))

// Service manages the products a user tracks and their folder membership.
type Service struct {
	products product.Repository
	folders  folder.Repository
	links    folder.ProductFolderRepository
	tx       database.Transactor
	policy   Policy
}

// NewService wires the stores together. A nil policy means OwnerPolicy.
func NewService(
	products product.Repository,
	folders folder.Repository,
	links folder.ProductFolderRepository,
	tx database.Transactor,
	policy Policy,
) *Service {
	if policy == nil {
		policy = OwnerPolicy{}
	}
	return &Service{
		products: products,
		folders:  folders,
		links:    links,
		tx:       tx,
		policy:   policy,
	}
}

func (s *Service) CreateProduct(ctx context.Context, req product.CreateRequest, actor user.User) (product.View, error) {
	p, err := s.products.Save(ctx, product.New(req, actor.ID))
	if err != nil {
		return product.View{}, err
	}
	logging.FromContext(ctx).Debug("product created", "product_id", p.ID, "user_id", actor.ID)
	return product.NewView(p), nil
}

// UpdatePrice sets the target price of a product.
//
// It does not consult the Policy: any caller may change any product's price.
// Callers that need ownership enforcement must check before calling.
func (s *Service) UpdatePrice(ctx context.Context, productID, myPrice int) (product.View, error) {
	if err := validation.Validate(myPrice, myPriceRule); err != nil {
		return product.View{}, apperr.Validation("%s", err.Error())
	}

	var updated product.Product
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.findProduct(ctx, productID)
		if err != nil {
			return err
		}
		p.UpdateMyPrice(myPrice)
		updated, err = s.products.Save(ctx, p)
		return err
	})
	if err != nil {
		return product.View{}, err
	}
	return product.NewView(updated), nil
}

// UpdateFromItem overwrites title, link, image and lowest price with a fresh
// lookup result. Like UpdatePrice it performs no ownership check.
func (s *Service) UpdateFromItem(ctx context.Context, productID int, item product.ItemData) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.findProduct(ctx, productID)
		if err != nil {
			return err
		}
		p.ApplyItem(item)
		_, err = s.products.Save(ctx, p)
		return err
	})
}

// ListProducts pages through the actor's products, or through every product
// when the actor has the ADMIN role.
func (s *Service) ListProducts(ctx context.Context, actor user.User, page, size int, sortBy string, isAsc bool) (pagination.Page[product.View], error) {
	req, err := pagination.NewPageRequest(page, size, sortBy, isAsc)
	if err != nil {
		return pagination.Page[product.View]{}, err
	}

	var result pagination.Page[product.Product]
	if actor.IsAdmin() {
		result, err = s.products.FindAll(ctx, req)
	} else {
		result, err = s.products.FindAllByUser(ctx, actor.ID, req)
	}
	if err != nil {
		return pagination.Page[product.View]{}, err
	}
	return pagination.Map(result, product.NewView), nil
}

// AddToFolder links a product into a folder. Both must belong to actor and
// the pair must not be linked already.
func (s *Service) AddToFolder(ctx context.Context, productID, folderID int, actor user.User) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.findProduct(ctx, productID)
		if err != nil {
			return err
		}
		f, err := s.folders.FindByID(ctx, folderID)
		if err != nil {
			if errors.Is(err, folder.ErrNotFound) {
				return apperr.NotFound("folder %d not found", folderID)
			}
			return err
		}

		if !s.policy.CanAttach(actor, p, f) {
			return apperr.Validation("product %d or folder %d does not belong to the user", productID, folderID)
		}

		if _, err := s.links.FindByProductAndFolder(ctx, p.ID, f.ID); err == nil {
			return apperr.Validation("product %d is already in folder %d", productID, folderID)
		} else if !errors.Is(err, folder.ErrLinkNotFound) {
			return err
		}

		if _, err := s.links.Save(ctx, folder.ProductFolder{ProductID: p.ID, FolderID: f.ID}); err != nil {
			if errors.Is(err, folder.ErrDuplicateLink) {
				return apperr.Validation("product %d is already in folder %d", productID, folderID)
			}
			return err
		}
		logging.FromContext(ctx).Debug("product added to folder", "product_id", productID, "folder_id", folderID)
		return nil
	})
}

// ListProductsInFolder pages through the actor's products linked to folderID.
// An unknown folder yields an empty page.
func (s *Service) ListProductsInFolder(ctx context.Context, folderID, page, size int, sortBy string, isAsc bool, actor user.User) (pagination.Page[product.View], error) {
	req, err := pagination.NewPageRequest(page, size, sortBy, isAsc)
	if err != nil {
		return pagination.Page[product.View]{}, err
	}

	result, err := s.products.FindAllByUserAndFolderID(ctx, actor.ID, folderID, req)
	if err != nil {
		return pagination.Page[product.View]{}, err
	}
	return pagination.Map(result, product.NewView), nil
}

func (s *Service) findProduct(ctx context.Context, id int) (product.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return product.Product{}, apperr.NotFound("product %d not found", id)
		}
		return product.Product{}, err
	}
	return p, nil
}
