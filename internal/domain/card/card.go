package card

import "strings"

// Input holds raw card details for a single authorization attempt.
// It is ephemeral: never logged, never persisted, and must not outlive
// the attempt it was collected for.
type Input struct {
	Number string // card number, possibly with spaces or separators
	Expiry string // expiry digits, MMYY / MMYYYY / MYY
	Holder string // card holder name as printed
	CVV    string // card verification value
}

// Normalized returns a copy with the number stripped to digits and the
// expiry reduced to MMYY.
func (in Input) Normalized() Input {
	in.Number = StripNonDigits(in.Number)
	in.Expiry = NormalizeExpiry(StripNonDigits(in.Expiry))
	in.Holder = strings.TrimSpace(in.Holder)
	return in
}

// StripNonDigits removes everything but ASCII digits.
func StripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// NormalizeExpiry fixes common expiry input shapes into MMYY:
// a 6-digit MMYYYY keeps the month and the last two year digits,
// a 3-digit MYY gains a leading zero. Anything else passes through.
func NormalizeExpiry(digits string) string {
	switch len(digits) {
	case 6:
		return digits[:2] + digits[4:]
	case 3:
		return "0" + digits
	default:
		return digits
	}
}

// Mask renders a card number safe for logs: first four and last four
// digits with the middle replaced. Short inputs are fully masked.
func Mask(number string) string {
	if len(number) < 8 {
		return "****"
	}
	return number[:4] + "****" + number[len(number)-4:]
}
