package checkout

import (
	"regexp"
	"strings"
)

// PaymentForm holds the raw field values as submitted. It is transient:
// nothing here is persisted or logged.
type PaymentForm struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
	Name       string `json:"name"`
}

// FieldErrors maps a form field to its single validation message.
type FieldErrors map[string]string

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryDateRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
)

// Validate checks every field and reports one message per invalid field.
// An empty result means the form passed.
func Validate(form PaymentForm) FieldErrors {
	errs := FieldErrors{}

	if !cardNumberRe.MatchString(strings.ReplaceAll(form.CardNumber, " ", "")) {
		errs["card_number"] = "Please enter a valid 16-digit card number"
	}

	if !expiryDateRe.MatchString(form.ExpiryDate) {
		errs["expiry_date"] = "Please enter a valid expiry date (MM/YY)"
	}

	if !cvvRe.MatchString(form.CVV) {
		errs["cvv"] = "Please enter a valid CVV (3-4 digits)"
	}

	if len(strings.TrimSpace(form.Name)) < 3 {
		errs["name"] = "Please enter a valid name"
	}

	return errs
}

// FormatCardNumber groups the digits into space-separated blocks of four.
// It only rearranges whitespace, so the digits seen by Validate are
// unchanged.
func FormatCardNumber(value string) string {
	digits := nonDigitRe.ReplaceAllString(value, "")
	if digits == "" {
		return value
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}

	var parts []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}

	return strings.Join(parts, " ")
}

// FormatExpiryDate inserts the slash after the month once enough digits
// are typed.
func FormatExpiryDate(value string) string {
	digits := nonDigitRe.ReplaceAllString(value, "")
	if len(digits) >= 3 {
		if len(digits) > 4 {
			digits = digits[:4]
		}
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}
