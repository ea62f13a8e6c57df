package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrPromoNotFound  = errors.New("promo code not found")
	ErrPromoExpired   = errors.New("promo code expired")
	ErrPromoMinAmount = errors.New("cart subtotal below promo minimum")
	ErrOutOfStock     = errors.New("product out of stock")
	ErrEmptyCart      = errors.New("cart is empty")
)

// ValidationError marks a missing required checkout field. Recoverable: the
// shopper corrects the form and resubmits.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
