package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositiveCents checks if a cent amount is positive
func ValidatePositiveCents(cents int64, fieldName string) error {
	if cents <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegativeCents checks if a cent amount is non-negative
func ValidateNonNegativeCents(cents int64, fieldName string) error {
	if cents < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateBillItem validates basic bill line item data
func ValidateBillItem(unitPriceCents int64, quantity int, description string) error {
	if err := ValidateRequired(description, "item description"); err != nil {
		return err
	}
	if err := ValidatePositiveCents(unitPriceCents, "item price"); err != nil {
		return err
	}
	if quantity <= 0 {
		return NewValidationError("item quantity must be positive")
	}
	return nil
}

// ValidatePaymentMethod checks the method is one the till accepts
func ValidatePaymentMethod(method string) error {
	switch method {
	case MethodCash, MethodCard, MethodAccount, MethodSplit, MethodMore:
		return nil
	}
	return NewValidationError(fmt.Sprintf("unsupported payment method %q", method))
}
