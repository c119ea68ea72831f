package network

import (
	"errors"
	"time"
)

var (
	// ErrNoActiveWallet - no authenticated address is available at call time
	ErrNoActiveWallet = errors.New("no active wallet")

	// ErrTransferRejected - the signer or the user declined the transfer
	ErrTransferRejected = errors.New("transfer rejected")

	// ErrTransferFailed - the network reported an execution error
	ErrTransferFailed = errors.New("transfer failed")
)

const (
	confirmationAttempts = 60
	confirmationInterval = 5 * time.Second

	txStatusPending = "pending"
	txStatusSuccess = "success"
)
