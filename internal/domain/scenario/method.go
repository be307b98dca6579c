package scenario

// MethodType names a payment method family. For card profiles it is the
// card brand; for alternative payments it decides the request shape.
type MethodType string

const (
	MethodVisa         MethodType = "visa"
	MethodMastercard   MethodType = "mastercard"
	MethodMobileMoney  MethodType = "mobile_money"
	MethodWallet       MethodType = "wallet"
	MethodBankTransfer MethodType = "bank_transfer"
	MethodCashVoucher  MethodType = "cash_voucher"
)

// Shape is the alternative-payment request layout.
type Shape string

const (
	// ShapeNested wraps the fields under a "payment" sub-object.
	ShapeNested Shape = "payment-nested"
	// ShapeDirect carries the fields at the top level of the request.
	ShapeDirect Shape = "direct"
)

// methodShapes is the explicit declaration of which layout each
// alternative-payment method uses. New methods must be registered here;
// the shape is never inferred from the data.
var methodShapes = map[MethodType]Shape{
	MethodMobileMoney:  ShapeNested,
	MethodWallet:       ShapeNested,
	MethodBankTransfer: ShapeDirect,
	MethodCashVoucher:  ShapeDirect,
}

// ShapeFor returns the declared request shape for an alternative-payment
// method. The second return is false for undeclared methods.
func ShapeFor(m MethodType) (Shape, bool) {
	shape, ok := methodShapes[m]
	return shape, ok
}
