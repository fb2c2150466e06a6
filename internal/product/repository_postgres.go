package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"
	"github.com/wichananm65/select-shop-backend/internal/database"
	"github.com/wichananm65/select-shop-backend/internal/pagination"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `p.id, p.title, p.link, p.image, p.lprice, p.myprice, p.user_id, p.created_at, p.modified_at`

	getProductByIDQuery = `SELECT ` + productColumns + ` FROM product p WHERE p.id = $1`
	insertProductQuery  = `
		INSERT INTO product (title, link, image, lprice, myprice, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, modified_at
	`
	updateProductQuery = `
		UPDATE product
		SET title = $1,
			link = $2,
			image = $3,
			lprice = $4,
			myprice = $5,
			modified_at = now()
		WHERE id = $6
		RETURNING created_at, modified_at
	`

	fromAllProducts    = `FROM product p`
	fromUserProducts   = `FROM product p WHERE p.user_id = $1`
	fromFolderProducts = `FROM product p
		JOIN product_folder pf ON pf.product_id = p.id
		WHERE p.user_id = $1 AND pf.folder_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int) (Product, error) {
	p, err := scanProduct(database.Conn(ctx, r.db).QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, p Product) (Product, error) {
	q := database.Conn(ctx, r.db)
	image := sql.NullString{String: p.Image, Valid: p.Image != ""}

	if p.ID == 0 {
		err := q.QueryRowContext(ctx, insertProductQuery,
			p.Title, p.Link, image, p.LPrice, p.MyPrice, p.UserID,
		).Scan(&p.ID, &p.CreatedAt, &p.ModifiedAt)
		if err != nil {
			return Product{}, fmt.Errorf("insert product: %w", err)
		}
		return p, nil
	}

	err := q.QueryRowContext(ctx, updateProductQuery,
		p.Title, p.Link, image, p.LPrice, p.MyPrice, p.ID,
	).Scan(&p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) FindAllByUser(ctx context.Context, userID int, req pagination.PageRequest) (pagination.Page[Product], error) {
	return r.page(ctx, fromUserProducts, req, userID)
}

func (r *PostgresRepository) FindAll(ctx context.Context, req pagination.PageRequest) (pagination.Page[Product], error) {
	return r.page(ctx, fromAllProducts, req)
}

func (r *PostgresRepository) FindAllByUserAndFolderID(ctx context.Context, userID, folderID int, req pagination.PageRequest) (pagination.Page[Product], error) {
	return r.page(ctx, fromFolderProducts, req, userID, folderID)
}

// page counts the rows selected by from and loads the requested window.
// The data query is skipped when nothing matches.
func (r *PostgresRepository) page(ctx context.Context, from string, req pagination.PageRequest, args ...any) (pagination.Page[Product], error) {
	col, err := SortColumn(req.SortBy)
	if err != nil {
		return pagination.Page[Product]{}, err
	}
	q := database.Conn(ctx, r.db)

	var total int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) `+from, args...).Scan(&total); err != nil {
		return pagination.Page[Product]{}, fmt.Errorf("count products: %w", err)
	}
	if total == 0 {
		return pagination.NewPage[Product](nil, 0, req), nil
	}

	dir := "DESC"
	if req.Ascending() {
		dir = "ASC"
	}
	limitArg := len(args) + 1
	query := `SELECT ` + productColumns + ` ` + from +
		` ORDER BY p.` + pq.QuoteIdentifier(col) + ` ` + dir + `, p.id ` + dir +
		` LIMIT $` + strconv.Itoa(limitArg) + ` OFFSET $` + strconv.Itoa(limitArg+1)

	rows, err := q.QueryContext(ctx, query, append(args, req.Size, req.Offset())...)
	if err != nil {
		return pagination.Page[Product]{}, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return pagination.Page[Product]{}, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[Product]{}, fmt.Errorf("list products: %w", err)
	}
	return pagination.NewPage(out, total, req), nil
}

func scanProduct(scanner rowScanner) (Product, error) {
	var (
		p     Product
		image sql.NullString
	)
	if err := scanner.Scan(&p.ID, &p.Title, &p.Link, &image, &p.LPrice, &p.MyPrice, &p.UserID, &p.CreatedAt, &p.ModifiedAt); err != nil {
		return Product{}, err
	}
	if image.Valid {
		p.Image = image.String
	}
	return p, nil
}
