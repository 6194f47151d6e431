package utils

// Keypad tokens accepted from the cash keypad. Digits shift the amount left one
// place, so typing "1","2","5" builds 125 cents ("1.25").
const (
	KeypadBackspace  = "backspace"
	KeypadClear      = "clear"
	KeypadDoubleZero = "00"
)

// maxKeypadCents guards against overflow from a held-down key; amounts beyond
// this are ignored rather than rejected.
const maxKeypadCents = int64(99999999999)

// ApplyKeypadToken applies one keypad token to a cash amount in cents and
// returns the new amount. Unknown tokens leave the amount unchanged.
func ApplyKeypadToken(amountCents int64, token string) int64 {
	switch token {
	case KeypadBackspace:
		return amountCents / 10
	case KeypadClear:
		return 0
	case KeypadDoubleZero:
		return ApplyKeypadToken(ApplyKeypadToken(amountCents, "0"), "0")
	}

	if len(token) != 1 || token[0] < '0' || token[0] > '9' {
		return amountCents
	}
	next := amountCents*10 + int64(token[0]-'0')
	if next > maxKeypadCents {
		return amountCents
	}
	return next
}
