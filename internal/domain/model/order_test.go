package model

import "testing"

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusPending.Terminal() || OrderStatusConfirmed.Terminal() {
		t.Fatal("open statuses must not be terminal")
	}
	if !OrderStatusDelivered.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatal("delivered and cancelled must be terminal")
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled} {
		if !ValidOrderStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidOrderStatus("shipped") {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodCredit} {
		if !ValidPaymentMethod(m) {
			t.Fatalf("expected %q to be valid", m)
		}
	}
	if ValidPaymentMethod("cheque") {
		t.Fatal("expected unknown method to be invalid")
	}
}

func TestOrderTotalItems(t *testing.T) {
	order := Order{Lines: []OrderLine{{Quantity: 2}, {Quantity: 3}}}
	if order.TotalItems() != 5 {
		t.Fatalf("unexpected item count: %d", order.TotalItems())
	}
	if (Order{}).TotalItems() != 0 {
		t.Fatal("expected zero items for empty order")
	}
}
