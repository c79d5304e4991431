package order

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestCreate(t *testing.T) {
	db, mock := newMock(t)

	now := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	o := Order{
		ID:          "order-1",
		UserID:      "user-1",
		TotalAmount: 25,
		CreatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(o.ID, o.UserID, o.TotalAmount, o.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := Create(context.Background(), db, o); err != nil {
		t.Fatalf("creating order: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFetchByUser(t *testing.T) {
	db, mock := newMock(t)

	now := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)

	orderRows := sqlmock.NewRows([]string{"order_id", "user_id", "total_amount", "created_at"}).
		AddRow("order-1", "user-1", 25.0, now)
	mock.ExpectQuery("SELECT \\* FROM orders WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(orderRows)

	itemRows := sqlmock.NewRows([]string{"order_id", "product_id", "name", "quantity", "price", "subtotal"}).
		AddRow("order-1", "prod-1", "bowl", 2, 10.0, 20.0).
		AddRow("order-1", "prod-2", "brush", 1, 5.0, 5.0)
	mock.ExpectQuery("SELECT \\* FROM order_items WHERE order_id").
		WithArgs("order-1").
		WillReturnRows(itemRows)

	got, err := FetchByUser(context.Background(), db, "user-1")
	if err != nil {
		t.Fatalf("fetching orders: %v", err)
	}

	want := []Order{{
		ID:          "order-1",
		UserID:      "user-1",
		TotalAmount: 25,
		CreatedAt:   now,
		Items: []Item{
			{OrderID: "order-1", ProductID: "prod-1", Name: "bowl", Quantity: 2, Price: 10, Subtotal: 20},
			{OrderID: "order-1", ProductID: "prod-2", Name: "brush", Quantity: 1, Price: 5, Subtotal: 5},
		},
	}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected orders (-want +got):\n%s", diff)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFetchByUserEmpty(t *testing.T) {
	db, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"order_id", "user_id", "total_amount", "created_at"})
	mock.ExpectQuery("SELECT \\* FROM orders WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(rows)

	got, err := FetchByUser(context.Background(), db, "user-1")
	if err != nil {
		t.Fatalf("fetching orders: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected no orders, got %d", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
