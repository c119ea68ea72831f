package session

import (
	"errors"
	"time"
)

var (
	// ErrNoWalletFound - no signer is installed
	ErrNoWalletFound = errors.New("no wallet found")

	// ErrConnectFailed - the signer handshake failed on every path
	ErrConnectFailed = errors.New("wallet connect failed")

	// ErrAddressUnavailable - the signer never reported an address within
	// the retry budget
	ErrAddressUnavailable = errors.New("wallet address unavailable")

	// ErrSigningUnsupported - the signer lacks message-signing capability
	ErrSigningUnsupported = errors.New("wallet does not support message signing")

	// ErrSigningFailed - the signer errored while signing the challenge
	ErrSigningFailed = errors.New("failed to sign message")

	// ErrAuthenticationFailed - no path yielded a token
	ErrAuthenticationFailed = errors.New("authentication failed")
)

const (
	addressRetries    = 10
	addressRetryDelay = 300 * time.Millisecond
	connectRetryDelay = time.Second

	challengeFormat = "Sign this message to authenticate with Crypto EuroMillions.\nWallet: %s\nTimestamp: %d"
)
