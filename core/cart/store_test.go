package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestFetch(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM carts WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_price", "created_at", "updated_at"}).
			AddRow("u1", 50.0, now, now))

	mock.ExpectQuery(`SELECT \* FROM cart_items WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "product_id", "name", "quantity", "price", "subtotal", "created_at"}).
			AddRow("u1", "p1", "tuna can", 5, 10.0, 50.0, now))

	c, err := Fetch(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if c.TotalPrice != 50 || len(c.Items) != 1 || c.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected cart: %+v", c)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetchNoCart(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT \* FROM carts WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnError(sql.ErrNoRows)

	if _, err := Fetch(context.Background(), db, "u1"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveReplacesLines(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()

	c := New("u1", now)
	c.AddItem("p1", "tuna can", 10, 2, now)
	c.AddItem("p2", "catnip", 5, 1, now)

	mock.ExpectExec(`INSERT INTO carts`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO cart_items`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO cart_items`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := Save(context.Background(), db, c); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM carts WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := Delete(context.Background(), db, "u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
