package folder

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/wichananm65/select-shop-backend/internal/apperr"
	"github.com/wichananm65/select-shop-backend/internal/database"
	"github.com/wichananm65/select-shop-backend/internal/user"
)

type AddFoldersRequest struct {
	FolderNames []string `json:"folderNames"`
}

func (r AddFoldersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FolderNames,
			validation.Required,
			validation.Each(validation.Required, validation.Length(1, 50)),
		),
	)
}

type Service struct {
	repo Repository
	tx   database.Transactor
}

func NewService(repo Repository, tx database.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

// AddFolders creates the named folders for actor. Names repeated in the
// request or already owned by actor are rejected and nothing is saved.
func (s *Service) AddFolders(ctx context.Context, names []string, actor user.User) ([]Folder, error) {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, apperr.Validation("folder name must not be blank")
		}
		if seen[n] {
			return nil, apperr.Validation("folder name %q is duplicated", n)
		}
		seen[n] = true
		cleaned = append(cleaned, n)
	}
	if len(cleaned) == 0 {
		return nil, apperr.Validation("at least one folder name is required")
	}

	var created []Folder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByUserAndNames(ctx, actor.ID, cleaned)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperr.Validation("folder name %q already exists", existing[0].Name)
		}

		created = make([]Folder, 0, len(cleaned))
		for _, n := range cleaned {
			f, err := s.repo.Save(ctx, Folder{Name: n, UserID: actor.ID})
			if err != nil {
				if errors.Is(err, ErrDuplicateName) {
					return apperr.Validation("folder name %q already exists", n)
				}
				return err
			}
			created = append(created, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) GetFolders(ctx context.Context, actor user.User) ([]Folder, error) {
	return s.repo.FindAllByUser(ctx, actor.ID)
}
