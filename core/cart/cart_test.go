package cart

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func checkInvariant(t *testing.T, c Cart) {
	t.Helper()

	var total float64
	seen := map[string]bool{}
	for _, it := range c.Items {
		if want := float64(it.Quantity) * it.Price; it.Subtotal != want {
			t.Fatalf("item[%s]: subtotal %v, want %v", it.ProductID, it.Subtotal, want)
		}
		if seen[it.ProductID] {
			t.Fatalf("item[%s]: duplicate line for the same product", it.ProductID)
		}
		seen[it.ProductID] = true
		total += it.Subtotal
	}

	if c.TotalPrice != total {
		t.Fatalf("total price %v, want sum of subtotals %v", c.TotalPrice, total)
	}
}

func TestAddItem(t *testing.T) {
	now := time.Now().UTC()
	c := New("user-1", now)

	c.AddItem("p1", "tuna can", 10, 3, now)
	checkInvariant(t, c)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].Subtotal != 30 {
		t.Fatalf("expected subtotal 30, got %v", c.Items[0].Subtotal)
	}
	if c.TotalPrice != 30 {
		t.Fatalf("expected total 30, got %v", c.TotalPrice)
	}
}

func TestAddItemMergesSameProduct(t *testing.T) {
	now := time.Now().UTC()
	c := New("user-1", now)

	c.AddItem("p1", "tuna can", 10, 3, now)
	c.AddItem("p1", "tuna can", 10, 2, now)
	checkInvariant(t, c)

	if len(c.Items) != 1 {
		t.Fatalf("expected the second add to merge into one line, got %d lines", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}
	if c.TotalPrice != 50 {
		t.Fatalf("expected total 50, got %v", c.TotalPrice)
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	now := time.Now().UTC()
	c := New("user-1", now)

	c.AddItem("p1", "tuna can", 10, 3, now)
	c.AddItem("p2", "catnip", 5, 1, now)
	c.SetQuantity("p1", "tuna can", 10, 7, now)
	checkInvariant(t, c)

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", c.Items[0].Quantity)
	}
	if c.TotalPrice != 75 {
		t.Fatalf("expected total 75, got %v", c.TotalPrice)
	}
}

func TestSetQuantityAppendsWhenAbsent(t *testing.T) {
	now := time.Now().UTC()
	c := New("user-1", now)

	c.SetQuantity("p1", "tuna can", 10, 2, now)
	checkInvariant(t, c)

	want := []Item{{
		UserID:    "user-1",
		ProductID: "p1",
		Name:      "tuna can",
		Quantity:  2,
		Price:     10,
		Subtotal:  20,
		CreatedAt: now,
	}}
	if diff := cmp.Diff(want, c.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestRemoveItem(t *testing.T) {
	now := time.Now().UTC()
	c := New("user-1", now)

	c.AddItem("p1", "tuna can", 10, 2, now)
	c.AddItem("p2", "catnip", 5, 1, now)

	if !c.RemoveItem("p1", now) {
		t.Fatal("expected p1 to be removed")
	}
	checkInvariant(t, c)

	if c.TotalPrice != 5 {
		t.Fatalf("expected total 5, got %v", c.TotalPrice)
	}
}

func TestRemoveAbsentItemLeavesTotal(t *testing.T) {
	now := time.Now().UTC()
	c := New("user-1", now)

	c.AddItem("p1", "tuna can", 10, 2, now)

	if c.RemoveItem("nope", now) {
		t.Fatal("expected removal of an absent product to report false")
	}
	checkInvariant(t, c)

	if c.TotalPrice != 20 {
		t.Fatalf("expected total 20, got %v", c.TotalPrice)
	}
}

func TestClear(t *testing.T) {
	now := time.Now().UTC()
	c := New("user-1", now)

	c.AddItem("p1", "tuna can", 10, 2, now)
	c.AddItem("p2", "catnip", 5, 3, now)

	c.Clear(now)
	checkInvariant(t, c)

	if len(c.Items) != 0 || c.TotalPrice != 0 {
		t.Fatalf("expected empty cart with zero total, got %d items and total %v", len(c.Items), c.TotalPrice)
	}
}
