package catalog

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_GetProduct(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, price, image FROM products WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "image"}).
			AddRow(1, "Shoe", 100.0, "shoe.jpg"))

	p, ok, err := s.GetProduct(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if p != (Product{ID: 1, Title: "Shoe", Price: 100, Image: "shoe.jpg"}) {
		t.Fatalf("product=%+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStore_GetProductMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	if _, ok, err := s.GetProduct(context.Background(), 42); ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestPostgresStore_GetStock(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT amount FROM stock WHERE id = $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(5))

	st, ok, err := s.GetStock(context.Background(), 3)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if st != (Stock{ID: 3, Amount: 5}) {
		t.Fatalf("stock=%+v", st)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT amount FROM stock WHERE id = $1`)).
		WithArgs(4).
		WillReturnError(sql.ErrNoRows)

	if _, ok, err := s.GetStock(context.Background(), 4); ok || err != nil {
		t.Fatalf("missing stock: ok=%v err=%v", ok, err)
	}
}

func TestPostgresStore_ListSortedByID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, price, image FROM products ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "image"}).
			AddRow(1, "A", 1.5, "a.jpg").
			AddRow(2, "B", 2.5, "b.jpg"))

	ps, err := s.ListSortedByID(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ps) != 2 || ps[0].ID != 1 || ps[1].Title != "B" {
		t.Fatalf("products=%+v", ps)
	}
}
