package backoffice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"workshop/internal/domain/money"
	"workshop/internal/domain/order"
	"workshop/internal/ports"
)

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()

	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("decimal %q: %v", raw, err)
	}
	return value
}

func TestCreateOrderComputesTotalsAndHistory(t *testing.T) {
	f := newFixture(t, Options{}, nil)
	ctx := context.Background()
	businessID := f.business(t, "Acme Motors")

	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		BusinessID: businessID,
		Supplier:   "Parts Direct",
		Items: []OrderItemInput{
			{Description: "Oil filter", Quantity: 3, UnitPrice: mustDecimal(t, "19.99")},
			{Description: "Spark plug", Quantity: 4, UnitPrice: mustDecimal(t, "0.10")},
		},
		Deposit:   mustDecimal(t, "10.00"),
		CreatedBy: 7,
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if created.OrderNumber != "ORD-1" || created.Status != string(order.StatusPending) {
		t.Fatalf("CreateOrder() = %q %q", created.OrderNumber, created.Status)
	}
	if !created.TotalAmount.Equal(mustDecimal(t, "60.37")) {
		t.Fatalf("TotalAmount = %s, want 60.37", created.TotalAmount)
	}

	loaded, err := f.svc.GetOrder(ctx, businessID, created.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if !loaded.TotalAmount.Equal(mustDecimal(t, "60.37")) || !loaded.DepositAmount.Equal(mustDecimal(t, "10")) {
		t.Fatalf("GetOrder() amounts = %s / %s", loaded.TotalAmount, loaded.DepositAmount)
	}
	if len(loaded.Items) != 2 || !loaded.Items[0].LineTotal.Equal(mustDecimal(t, "59.97")) {
		t.Fatalf("GetOrder() items = %+v", loaded.Items)
	}

	history, err := f.svc.ListOrderHistory(ctx, businessID, created.ID)
	if err != nil {
		t.Fatalf("ListOrderHistory() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history len = %d, want 1", len(history))
	}
	if history[0].PreviousStatus != nil || history[0].NewStatus != string(order.StatusPending) || history[0].ChangeReason != order.CreatedReason {
		t.Fatalf("initial history = %+v", history[0])
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	f := newFixture(t, Options{}, nil)
	ctx := context.Background()
	businessID := f.business(t, "Acme Motors")

	if _, err := f.svc.CreateOrder(ctx, CreateOrderInput{BusinessID: businessID}); !errors.Is(err, order.ErrNoItems) {
		t.Fatalf("CreateOrder(no items) error = %v", err)
	}
	_, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		BusinessID: businessID,
		Items:      []OrderItemInput{{Description: "Filter", Quantity: 0, UnitPrice: mustDecimal(t, "1")}},
	})
	if !errors.Is(err, order.ErrInvalidItem) {
		t.Fatalf("CreateOrder(zero quantity) error = %v", err)
	}

	current, found, err := f.svc.CurrentCounter(ctx, businessID, "order")
	if err != nil || found {
		t.Fatalf("CurrentCounter() = %d, %v, %v; rejected orders must not consume numbers", current, found, err)
	}
}

func TestTransitionOrderStatusWritesHistory(t *testing.T) {
	f := newFixture(t, Options{}, nil)
	ctx := context.Background()
	businessID := f.business(t, "Acme Motors")

	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		BusinessID: businessID,
		Items:      []OrderItemInput{{Description: "Belt", Quantity: 1, UnitPrice: mustDecimal(t, "42.50")}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	f.clock.Advance(time.Hour)
	arrived, err := f.svc.TransitionOrderStatus(ctx, TransitionOrderInput{
		BusinessID: businessID,
		OrderID:    created.ID,
		Status:     "Arrived",
		ChangedBy:  3,
		Reason:     "Courier",
		Metadata:   map[string]any{"tracking": "ZX1"},
	})
	if err != nil {
		t.Fatalf("TransitionOrderStatus(arrived) error = %v", err)
	}
	if arrived.ActualDeliveryDate == nil || !arrived.ActualDeliveryDate.Equal(f.clock.Now()) {
		t.Fatalf("ActualDeliveryDate = %v", arrived.ActualDeliveryDate)
	}
	firstArrival := *arrived.ActualDeliveryDate

	f.clock.Advance(time.Hour)
	again, err := f.svc.TransitionOrderStatus(ctx, TransitionOrderInput{BusinessID: businessID, OrderID: created.ID, Status: "arrived"})
	if err != nil {
		t.Fatalf("TransitionOrderStatus(arrived again) error = %v", err)
	}
	if again.ActualDeliveryDate == nil || !again.ActualDeliveryDate.Equal(firstArrival) {
		t.Fatalf("repeat arrival moved delivery date to %v", again.ActualDeliveryDate)
	}

	completed, err := f.svc.TransitionOrderStatus(ctx, TransitionOrderInput{BusinessID: businessID, OrderID: created.ID, Status: "completed"})
	if err != nil {
		t.Fatalf("TransitionOrderStatus(completed) error = %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("CompletedAt not set")
	}

	history, err := f.svc.ListOrderHistory(ctx, businessID, created.ID)
	if err != nil {
		t.Fatalf("ListOrderHistory() error = %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("history len = %d, want 4", len(history))
	}
	want := [][2]string{
		{"", "pending"},
		{"pending", "arrived"},
		{"arrived", "arrived"},
		{"arrived", "completed"},
	}
	for i, row := range history {
		previous := ""
		if row.PreviousStatus != nil {
			previous = *row.PreviousStatus
		}
		if previous != want[i][0] || row.NewStatus != want[i][1] {
			t.Fatalf("history[%d] = %s -> %s, want %s -> %s", i, previous, row.NewStatus, want[i][0], want[i][1])
		}
	}
	if history[1].ChangeReason != "Courier" || history[1].Metadata["tracking"] != "ZX1" || history[1].ChangedBy != 3 {
		t.Fatalf("history[1] = %+v", history[1])
	}
}

func TestTransitionOrderStatusIsTenantScoped(t *testing.T) {
	f := newFixture(t, Options{}, nil)
	ctx := context.Background()
	owner := f.business(t, "Owner")
	other := f.business(t, "Other")

	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		BusinessID: owner,
		Items:      []OrderItemInput{{Description: "Belt", Quantity: 1, UnitPrice: mustDecimal(t, "1")}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	_, err = f.svc.TransitionOrderStatus(ctx, TransitionOrderInput{BusinessID: other, OrderID: created.ID, Status: "cancelled"})
	if !errors.Is(err, ports.ErrOrderNotFound) {
		t.Fatalf("TransitionOrderStatus(other tenant) error = %v, want ErrOrderNotFound", err)
	}
	if _, err := f.svc.TransitionOrderStatus(ctx, TransitionOrderInput{BusinessID: owner, OrderID: created.ID, Status: "lost"}); !errors.Is(err, order.ErrInvalidStatus) {
		t.Fatalf("TransitionOrderStatus(lost) error = %v", err)
	}

	history, err := f.svc.ListOrderHistory(ctx, owner, created.ID)
	if err != nil || len(history) != 1 {
		t.Fatalf("ListOrderHistory() = %d rows, %v", len(history), err)
	}
}

func TestCreateOrderInitialStatusTimestamps(t *testing.T) {
	f := newFixture(t, Options{}, nil)
	ctx := context.Background()
	businessID := f.business(t, "Acme Motors")
	now := f.clock.Now()

	testCases := []struct {
		status        order.Status
		wantCompleted bool
		wantCancelled bool
		wantDelivered bool
	}{
		{status: order.StatusPending},
		{status: order.StatusCompleted, wantCompleted: true},
		{status: order.StatusCancelled, wantCancelled: true},
		{status: order.StatusArrived, wantDelivered: true},
	}
	for _, testCase := range testCases {
		created, err := f.svc.CreateOrder(ctx, CreateOrderInput{
			BusinessID: businessID,
			Status:     string(testCase.status),
			Items:      []OrderItemInput{{Description: "Filter", Quantity: 1, UnitPrice: mustDecimal(t, "9.99")}},
		})
		if err != nil {
			t.Fatalf("CreateOrder(%s) error = %v", testCase.status, err)
		}

		loaded, err := f.svc.GetOrder(ctx, businessID, created.ID)
		if err != nil {
			t.Fatalf("GetOrder() error = %v", err)
		}
		if (loaded.CompletedAt != nil) != testCase.wantCompleted ||
			(loaded.CancelledAt != nil) != testCase.wantCancelled ||
			(loaded.ActualDeliveryDate != nil) != testCase.wantDelivered {
			t.Fatalf("CreateOrder(%s) timestamps = completed %v cancelled %v delivered %v",
				testCase.status, loaded.CompletedAt, loaded.CancelledAt, loaded.ActualDeliveryDate)
		}
		for _, stamp := range []*time.Time{loaded.CompletedAt, loaded.CancelledAt, loaded.ActualDeliveryDate} {
			if stamp != nil && !stamp.Equal(now) {
				t.Fatalf("CreateOrder(%s) stamp = %v, want %v", testCase.status, stamp, now)
			}
		}
	}
}

func TestCreateOrderRejectsOverflowingAmounts(t *testing.T) {
	f := newFixture(t, Options{}, nil)
	ctx := context.Background()
	businessID := f.business(t, "Acme Motors")

	inputs := [][]OrderItemInput{
		{{Description: "Gearbox", Quantity: 1_000_000_000_000, UnitPrice: mustDecimal(t, "1000000.00")}},
		{
			{Description: "Engine", Quantity: 1, UnitPrice: mustDecimal(t, "50000000000000000")},
			{Description: "Engine", Quantity: 1, UnitPrice: mustDecimal(t, "50000000000000000")},
		},
		{{Description: "Chassis", Quantity: 1, UnitPrice: mustDecimal(t, "100000000000000000")}},
	}
	for i, items := range inputs {
		_, err := f.svc.CreateOrder(ctx, CreateOrderInput{BusinessID: businessID, Items: items})
		if !errors.Is(err, order.ErrInvalidItem) || !errors.Is(err, money.ErrAmountOutOfRange) {
			t.Fatalf("CreateOrder(case %d) error = %v, want ErrInvalidItem and ErrAmountOutOfRange", i, err)
		}
	}
	if _, found, err := f.svc.CurrentCounter(ctx, businessID, "order"); err != nil || found {
		t.Fatalf("CurrentCounter() found = %v, %v; rejected orders must not consume numbers", found, err)
	}
}
