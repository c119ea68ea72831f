package purchase

import (
	"errors"
	"fmt"
)

var (
	// ErrReconnectRequired - no valid session, or the active wallet no
	// longer matches it; the caller should run the connect flow instead
	ErrReconnectRequired = errors.New("wallet connection required")

	// ErrIncompleteSelection - the standard entry point needs a full
	// selection before any backend call is made
	ErrIncompleteSelection = errors.New("incomplete number selection")

	// ErrPurchaseInProgress - another purchase holds the guard
	ErrPurchaseInProgress = errors.New("a purchase is already in progress")

	// ErrIntentCreationFailed - the backend rejected the payment intent
	ErrIntentCreationFailed = errors.New("failed to create payment intent")

	// ErrVerificationFailed - the backend did not accept the transfer as
	// satisfying the intent
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrTicketCreationFailed - the backend rejected the ticket
	ErrTicketCreationFailed = errors.New("failed to create ticket")
)

func wrapStep(step error, cause error) error {
	return fmt.Errorf("%w: %s", step, cause.Error())
}
