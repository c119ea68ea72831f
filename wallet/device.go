package wallet

import (
	"context"
	"sync"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ElrondNetwork/elrond-go-crypto/signing"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519/singlesig"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/blockchain"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/builders"
	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/interactors"
	"github.com/tyler-smith/go-bip39"

	"github.com/lampochka7181/CryptoEuroMillionsBot/utils"
)

var log = logger.GetOrCreate("wallet")

// DeviceWallet holds the key derived from a locally configured seed phrase.
// The key is derived in the background after Connect resolves, so Address
// stays empty for a short while; callers poll for it.
type DeviceWallet struct {
	seedphrase string
	proxyURL   string

	mut         sync.RWMutex
	privateKey  []byte
	address     string
	connected   bool
	disconnects chan struct{}
}

// NewDeviceWallet - creates a new DeviceWallet object
func NewDeviceWallet(seedphrase string, proxyURL string) *DeviceWallet {
	return &DeviceWallet{
		seedphrase:  seedphrase,
		proxyURL:    proxyURL,
		disconnects: make(chan struct{}, 1),
	}
}

// Connect validates the seed phrase and starts the key derivation. It
// returns before the address is available.
func (w *DeviceWallet) Connect(_ context.Context) error {
	w.mut.Lock()
	defer w.mut.Unlock()

	if w.connected {
		return nil
	}
	if !bip39.IsMnemonicValid(w.seedphrase) {
		return ErrInvalidSeedphrase
	}

	w.connected = true
	go w.deriveKey()

	return nil
}

func (w *DeviceWallet) deriveKey() {
	privateKey := utils.GetPrivateKeyFromSeedphrase(w.seedphrase)
	address := utils.GetAddressFromPrivateKey(privateKey)

	w.mut.Lock()
	defer w.mut.Unlock()
	if !w.connected {
		return
	}
	w.privateKey = privateKey
	w.address = address
	log.Debug("wallet key ready", "address", address)
}

// Disconnect wipes the key material and notifies subscribers
func (w *DeviceWallet) Disconnect() error {
	w.mut.Lock()
	defer w.mut.Unlock()

	if !w.connected {
		return nil
	}
	w.connected = false
	w.privateKey = nil
	w.address = ""

	select {
	case w.disconnects <- struct{}{}:
	default:
	}

	return nil
}

// Address returns the bech32 address, or an empty string until the key
// derivation finishes
func (w *DeviceWallet) Address() string {
	w.mut.RLock()
	defer w.mut.RUnlock()

	return w.address
}

// Connected returns true between Connect and Disconnect
func (w *DeviceWallet) Connected() bool {
	w.mut.RLock()
	defer w.mut.RUnlock()

	return w.connected
}

// Disconnects is the notification channel fired on wallet teardown
func (w *DeviceWallet) Disconnects() <-chan struct{} {
	return w.disconnects
}

// SignMessage produces an ed25519 signature over the message
func (w *DeviceWallet) SignMessage(message []byte) ([]byte, error) {
	w.mut.RLock()
	privateKey := w.privateKey
	w.mut.RUnlock()

	if len(privateKey) == 0 {
		return nil, ErrNotConnected
	}

	keyGen := signing.NewKeyGenerator(ed25519.NewEd25519())
	txSignPrivKey, err := keyGen.PrivateKeyFromByteArray(privateKey)
	if err != nil {
		return nil, err
	}

	signer := &singlesig.Ed25519Signer{}
	signature, err := signer.Sign(txSignPrivKey, message)
	if err != nil {
		log.Error("can not sign message", "error", err)
		return nil, err
	}

	return signature, nil
}

// SendTransaction signs the prepared arguments and submits the transaction
// through the proxy
func (w *DeviceWallet) SendTransaction(ctx context.Context, txArgs sdkData.ArgCreateTransaction) (string, error) {
	w.mut.RLock()
	privateKey := w.privateKey
	w.mut.RUnlock()

	if len(privateKey) == 0 {
		return "", ErrNotConnected
	}

	ep := blockchain.NewElrondProxy(w.proxyURL, nil)
	builder, err := builders.NewTxBuilder(blockchain.NewTxSigner())
	if err != nil {
		log.Error("error creating transaction builder", "error", err)
		return "", err
	}

	ti, err := interactors.NewTransactionInteractor(ep, builder)
	if err != nil {
		log.Error("error creating transaction interactor", "error", err)
		return "", err
	}

	tx, err := ti.ApplySignatureAndGenerateTx(privateKey, txArgs)
	if err != nil {
		log.Error("unable to sign transaction", "error", err)
		return "", err
	}

	return ti.SendTransaction(ctx, tx)
}
