package folder

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM folder WHERE id").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}).AddRow(4, "Shoes", 1))
	f, err := repo.FindByID(context.Background(), 4)
	if err != nil || f.Name != "Shoes" || f.UserID != 1 {
		t.Fatalf("unexpected folder %+v, %v", f, err)
	}

	mock.ExpectQuery("FROM folder WHERE id").WithArgs(5).WillReturnError(sql.ErrNoRows)
	if _, err := repo.FindByID(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresFindByUserAndNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("name = ANY").WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}).AddRow(4, "Shoes", 1))

	got, err := repo.FindByUserAndNames(context.Background(), 1, []string{"Shoes", "Books"})
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result %+v, %v", got, err)
	}

	// empty input never reaches the database
	got, err = repo.FindByUserAndNames(context.Background(), 1, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("unexpected result for empty names %+v, %v", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSaveFolder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO folder").WithArgs("Books", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	f, err := repo.Save(context.Background(), Folder{Name: "Books", UserID: 1})
	if err != nil || f.ID != 9 {
		t.Fatalf("unexpected saved folder %+v, %v", f, err)
	}

	mock.ExpectQuery("INSERT INTO folder").WithArgs("Books", 1).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Save(context.Background(), Folder{Name: "Books", UserID: 1}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	mock.ExpectExec("UPDATE folder").WithArgs("Novels", 1, 9).WillReturnResult(sqlmock.NewResult(0, 1))
	if _, err := repo.Save(context.Background(), Folder{ID: 9, Name: "Novels", UserID: 1}); err != nil {
		t.Fatalf("expected nil err on update, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresProductFolderSave_UniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresProductFolderRepository(db)

	mock.ExpectQuery("INSERT INTO product_folder").WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	pf, err := repo.Save(context.Background(), ProductFolder{ProductID: 1, FolderID: 2})
	if err != nil || pf.ID != 1 {
		t.Fatalf("unexpected link %+v, %v", pf, err)
	}

	mock.ExpectQuery("INSERT INTO product_folder").WithArgs(1, 2).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Save(context.Background(), ProductFolder{ProductID: 1, FolderID: 2}); !errors.Is(err, ErrDuplicateLink) {
		t.Fatalf("expected ErrDuplicateLink, got %v", err)
	}

	mock.ExpectQuery("FROM product_folder").WithArgs(3, 2).WillReturnError(sql.ErrNoRows)
	if _, err := repo.FindByProductAndFolder(context.Background(), 3, 2); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
