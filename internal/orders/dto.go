package orders

import "github.com/shopspring/decimal"

// PlaceOrderItemRequest is one line of an incoming order. UnitPrice is the
// price the caller saw at checkout and is recorded as-is on the item.
type PlaceOrderItemRequest struct {
	ProductID int64           `json:"productId" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"required"`
}

// PlaceOrderRequest is the POST /orders body. Payment and device metadata
// are optional; the fraud columns on orders are populated upstream and stay
// at their zero values for API-placed orders.
type PlaceOrderRequest struct {
	CustomerID    int64                   `json:"customerId" validate:"required,gt=0"`
	Items         []PlaceOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string                  `json:"paymentMethod" validate:"omitempty,oneof=card paypal bank_transfer cod"`
	DeviceType    string                  `json:"deviceType" validate:"omitempty,oneof=desktop mobile tablet"`
	Country       string                  `json:"country" validate:"omitempty,len=2"`
}

// PlaceOrderResult reports the key assigned to the new order.
type PlaceOrderResult struct {
	OrderID int64
}
