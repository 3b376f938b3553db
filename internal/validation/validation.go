package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted for all ledger and position dates.
const DateLayout = "2006-01-02"

// Common validation errors
var (
	ErrInvalidUUID   = fmt.Errorf("invalid UUID format")
	ErrInvalidAmount = fmt.Errorf("invalid amount")
	ErrInvalidDate   = fmt.Errorf("invalid date")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(str string) (time.Time, error) {
	if strings.TrimSpace(str) == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	d, err := time.Parse(DateLayout, str)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, str)
	}
	return d.UTC(), nil
}

// ParseAmount parses a decimal amount that must be zero or positive.
func ParseAmount(str string) (decimal.Decimal, error) {
	if strings.TrimSpace(str) == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(str))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, str)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
	}
	return amount, nil
}

// ParsePrice parses a decimal price that must be strictly positive.
func ParsePrice(str string) (decimal.Decimal, error) {
	price, err := ParseAmount(str)
	if err != nil {
		return decimal.Zero, err
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be positive", ErrInvalidAmount)
	}
	return price, nil
}
