package folder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/wichananm65/select-shop-backend/internal/database"
)

const uniqueViolation = "23505"

const (
	getFolderByIDQuery      = `SELECT id, name, user_id FROM folder WHERE id = $1`
	listFoldersByUserQuery  = `SELECT id, name, user_id FROM folder WHERE user_id = $1 ORDER BY id`
	listFoldersByNamesQuery = `SELECT id, name, user_id FROM folder WHERE user_id = $1 AND name = ANY($2::text[]) ORDER BY id`
	insertFolderQuery       = `INSERT INTO folder (name, user_id) VALUES ($1, $2) RETURNING id`
	updateFolderQuery       = `UPDATE folder SET name = $1, user_id = $2 WHERE id = $3`

	getLinkQuery = `
		SELECT id, product_id, folder_id
		FROM product_folder
		WHERE product_id = $1 AND folder_id = $2
	`
	insertLinkQuery = `INSERT INTO product_folder (product_id, folder_id) VALUES ($1, $2) RETURNING id`
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int) (Folder, error) {
	var f Folder
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, getFolderByIDQuery, id).Scan(&f.ID, &f.Name, &f.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Folder{}, ErrNotFound
		}
		return Folder{}, fmt.Errorf("get folder: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) FindAllByUser(ctx context.Context, userID int) ([]Folder, error) {
	return r.list(ctx, listFoldersByUserQuery, userID)
}

func (r *PostgresRepository) FindByUserAndNames(ctx context.Context, userID int, names []string) ([]Folder, error) {
	if len(names) == 0 {
		return []Folder{}, nil
	}
	return r.list(ctx, listFoldersByNamesQuery, userID, pq.Array(names))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Folder, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	out := make([]Folder, 0)
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.UserID); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Save(ctx context.Context, f Folder) (Folder, error) {
	q := database.Conn(ctx, r.db)
	if f.ID == 0 {
		if err := q.QueryRowContext(ctx, insertFolderQuery, f.Name, f.UserID).Scan(&f.ID); err != nil {
			if isUniqueViolation(err) {
				return Folder{}, ErrDuplicateName
			}
			return Folder{}, fmt.Errorf("insert folder: %w", err)
		}
		return f, nil
	}

	res, err := q.ExecContext(ctx, updateFolderQuery, f.Name, f.UserID, f.ID)
	if err != nil {
		return Folder{}, fmt.Errorf("update folder: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Folder{}, ErrNotFound
	}
	return f, nil
}

type PostgresProductFolderRepository struct {
	db *sql.DB
}

func NewPostgresProductFolderRepository(db *sql.DB) *PostgresProductFolderRepository {
	return &PostgresProductFolderRepository{db: db}
}

func (r *PostgresProductFolderRepository) FindByProductAndFolder(ctx context.Context, productID, folderID int) (ProductFolder, error) {
	var pf ProductFolder
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, getLinkQuery, productID, folderID).Scan(&pf.ID, &pf.ProductID, &pf.FolderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductFolder{}, ErrLinkNotFound
		}
		return ProductFolder{}, fmt.Errorf("get product folder: %w", err)
	}
	return pf, nil
}

// Save inserts the link; the unique constraint on the pair surfaces as
// ErrDuplicateLink.
func (r *PostgresProductFolderRepository) Save(ctx context.Context, pf ProductFolder) (ProductFolder, error) {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, insertLinkQuery, pf.ProductID, pf.FolderID).Scan(&pf.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ProductFolder{}, ErrDuplicateLink
		}
		return ProductFolder{}, fmt.Errorf("insert product folder: %w", err)
	}
	return pf, nil
}
