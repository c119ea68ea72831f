package wallet

import "errors"

var (
	// ErrInvalidSeedphrase - the configured seed phrase is not a valid
	// bip39 mnemonic
	ErrInvalidSeedphrase = errors.New("invalid seed phrase")

	// ErrNotConnected - a signing operation was requested before the
	// wallet key was available
	ErrNotConnected = errors.New("wallet not connected")
)
