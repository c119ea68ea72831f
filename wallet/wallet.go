package wallet

import (
	"context"

	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"
)

// Signer is the boundary to whatever holds the user's key material. Only the
// base handshake is guaranteed; message signing and transaction submission
// are optional capabilities discovered with a type assertion.
type Signer interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Address() string
	Connected() bool
	Disconnects() <-chan struct{}
}

// MessageSigner is the capability of producing a signature over an arbitrary
// message
type MessageSigner interface {
	SignMessage(message []byte) ([]byte, error)
}

// TransactionSender is the capability of countersigning and submitting a
// prepared transaction, returning its hash
type TransactionSender interface {
	SendTransaction(ctx context.Context, txArgs sdkData.ArgCreateTransaction) (string, error)
}
