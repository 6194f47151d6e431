package utils

const (
	// Split types
	SplitTypeNone   = "none"
	SplitTypeAmount = "amount"
	SplitTypeItem   = "item"

	// Payment methods
	MethodCash    = "cash"
	MethodCard    = "card"
	MethodAccount = "account"
	MethodSplit   = "split"
	MethodMore    = "more"

	// Fee credit types for card payments
	FeeCreditDomestic = "domestic"
	FeeCreditAmex     = "amex"

	// Card surcharge rates, applied to the amount due
	SurchargeRateDomestic = 0.019
	SurchargeRateAmex     = 0.029

	// Gift-card redemptions are payments whose value is subtracted from the
	// final total instead of accumulating as paid-toward.
	PaymentTypeStandard = 0
	PaymentTypeGiftCard = 3

	// A bill is considered settled once the remaining amount is within one cent.
	SettledEpsilonCents = int64(1)

	// Split-slot payment ids are "split-{n}" so partial payments toward the
	// same slot aggregate.
	SplitSlotIDPrefix = "split-"

	// Table code generation
	CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength  = 6

	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrSessionNotFound  = "Checkout session not found"
	ErrBillNotFound     = "Bill not found"
	ErrBillNotSettled   = "Bill is not fully settled"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"
)
