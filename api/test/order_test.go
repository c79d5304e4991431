package test

import (
	"net/http"
	"testing"

	"github.com/meowexpress/ecommerce-api/core/order"
	"github.com/meowexpress/ecommerce-api/random"
)

func TestOrder(t *testing.T) {
	env, err := NewTestEnv(t, "order_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	admin := env.NewAdmin(t)

	p1 := env.createProduct(t, admin, "bowl-"+random.String(8), 10)
	p2 := env.createProduct(t, admin, "brush-"+random.String(8), 5)

	t.Run("CheckoutWithoutCart", func(t *testing.T) {
		token := env.NewUser(t)

		w := env.Do(t, http.MethodPost, "/orders/checkout", token, nil)
		Decode(t, w, http.StatusNotFound, nil)
	})

	t.Run("CheckoutEmptyCart", func(t *testing.T) {
		token := env.NewUser(t)

		// Clearing leaves the cart row behind with no lines.
		env.addToCart(t, token, p1.ID, 1, http.StatusOK)
		w := env.Do(t, http.MethodDelete, "/cart/clear-cart", token, nil)
		Decode(t, w, http.StatusOK, nil)

		w = env.Do(t, http.MethodPost, "/orders/checkout", token, nil)
		Decode(t, w, http.StatusBadRequest, nil)
	})

	t.Run("Checkout", func(t *testing.T) {
		token := env.NewUser(t)

		env.addToCart(t, token, p1.ID, 2, http.StatusOK)
		env.addToCart(t, token, p2.ID, 1, http.StatusOK)

		w := env.Do(t, http.MethodPost, "/orders/checkout", token, nil)
		var o order.Order
		Decode(t, w, http.StatusOK, &o)

		if o.ID == "" {
			t.Error("expected the order to carry an id")
		}
		if o.TotalAmount != 25 {
			t.Errorf("expected total 25, got %v", o.TotalAmount)
		}
		if len(o.Items) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(o.Items))
		}
		for _, it := range o.Items {
			switch it.ProductID {
			case p1.ID:
				if it.Quantity != 2 || it.Price != 10 || it.Subtotal != 20 {
					t.Errorf("unexpected snapshot for product[%s]: %+v", p1.ID, it)
				}
			case p2.ID:
				if it.Quantity != 1 || it.Price != 5 || it.Subtotal != 5 {
					t.Errorf("unexpected snapshot for product[%s]: %+v", p2.ID, it)
				}
			default:
				t.Errorf("unexpected product[%s] in order", it.ProductID)
			}
		}

		// The cart is consumed by the checkout.
		w = env.Do(t, http.MethodGet, "/cart/get-cart", token, nil)
		Decode(t, w, http.StatusNotFound, nil)

		w = env.Do(t, http.MethodPost, "/orders/checkout", token, nil)
		Decode(t, w, http.StatusNotFound, nil)
	})

	t.Run("OrderSnapshotOutlivesProductChanges", func(t *testing.T) {
		token := env.NewUser(t)

		p := env.createProduct(t, admin, "perch-"+random.String(8), 30)
		env.addToCart(t, token, p.ID, 1, http.StatusOK)

		w := env.Do(t, http.MethodPost, "/orders/checkout", token, nil)
		var o order.Order
		Decode(t, w, http.StatusOK, &o)

		// Repricing the product must not touch the placed order.
		w = env.Do(t, http.MethodPut, "/products/"+p.ID+"/update", admin, map[string]interface{}{
			"price": 99.0,
		})
		Decode(t, w, http.StatusOK, nil)

		w = env.Do(t, http.MethodGet, "/orders/my-orders", token, nil)
		var os []order.Order
		Decode(t, w, http.StatusOK, &os)
		if len(os) != 1 {
			t.Fatalf("expected 1 order, got %d", len(os))
		}
		if os[0].TotalAmount != 30 || os[0].Items[0].Price != 30 {
			t.Errorf("expected the order to keep its snapshot, got %+v", os[0])
		}
	})

	t.Run("ListOwn", func(t *testing.T) {
		token := env.NewUser(t)

		w := env.Do(t, http.MethodGet, "/orders/my-orders", token, nil)
		Decode(t, w, http.StatusNotFound, nil)

		env.addToCart(t, token, p1.ID, 1, http.StatusOK)
		w = env.Do(t, http.MethodPost, "/orders/checkout", token, nil)
		Decode(t, w, http.StatusOK, nil)

		w = env.Do(t, http.MethodGet, "/orders/my-orders", token, nil)
		var os []order.Order
		Decode(t, w, http.StatusOK, &os)
		if len(os) != 1 {
			t.Fatalf("expected 1 order, got %d", len(os))
		}

		// Another shopper's history is invisible here.
		other := env.NewUser(t)
		w = env.Do(t, http.MethodGet, "/orders/my-orders", other, nil)
		Decode(t, w, http.StatusNotFound, nil)
	})

	t.Run("ListAll", func(t *testing.T) {
		token := env.NewUser(t)

		env.addToCart(t, token, p2.ID, 3, http.StatusOK)
		w := env.Do(t, http.MethodPost, "/orders/checkout", token, nil)
		Decode(t, w, http.StatusOK, nil)

		w = env.Do(t, http.MethodGet, "/orders/all-orders", token, nil)
		Decode(t, w, http.StatusForbidden, nil)

		w = env.Do(t, http.MethodGet, "/orders/all-orders", admin, nil)
		var os []order.Order
		Decode(t, w, http.StatusOK, &os)
		if len(os) < 1 {
			t.Errorf("expected at least one order, got %d", len(os))
		}
	})
}
