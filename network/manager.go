package network

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ElrondNetwork/elrond-go-core/core"
	"github.com/ElrondNetwork/elrond-go-core/core/pubkeyConverter"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/blockchain"
	erdgoCore "github.com/ElrondNetwork/elrond-sdk-erdgo/core"
	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"

	"github.com/lampochka7181/CryptoEuroMillionsBot/data"
	"github.com/lampochka7181/CryptoEuroMillionsBot/utils"
	"github.com/lampochka7181/CryptoEuroMillionsBot/wallet"
)

var log = logger.GetOrCreate("network")

// proxyHandler extends blockchain.Proxy with the transaction argument helper
// implemented by the concrete proxy returned by blockchain.NewElrondProxy
type proxyHandler interface {
	blockchain.Proxy
	GetDefaultTransactionArguments(ctx context.Context, address erdgoCore.AddressHandler, networkConfigs *sdkData.NetworkConfig) (sdkData.ArgCreateTransaction, error)
}

// Manager - holds the required fields of a network manager
type Manager struct {
	NetworkConfig *sdkData.NetworkConfig
	cfg           *data.AppConfig

	fDenomination *big.Float
	proxy         proxyHandler
	conv          core.PubkeyConverter

	confirmationAttempts int
	confirmationInterval time.Duration
}

// NewManager - creates a new network Manager object
func NewManager(cfg *data.AppConfig) (*Manager, error) {
	proxy := blockchain.NewElrondProxy(cfg.Network.Proxy, nil)

	networkConfig, err := proxy.GetNetworkConfig(context.Background())
	if err != nil {
		log.Error("can not get network config from proxy", "error", err)
		return nil, err
	}

	fDenomination := big.NewFloat(1)
	for i := 0; i < networkConfig.Denomination; i++ {
		fDenomination.Mul(fDenomination, big.NewFloat(10))
	}

	conv, err := pubkeyConverter.NewBech32PubkeyConverter(32, log)
	if err != nil {
		log.Error("can not create converter", "error", err)
		return nil, err
	}

	manager := &Manager{
		NetworkConfig: networkConfig,
		cfg:           cfg,
		fDenomination: fDenomination,
		proxy:         proxy,
		conv:          conv,

		confirmationAttempts: confirmationAttempts,
		confirmationInterval: confirmationInterval,
	}

	return manager, nil
}

// GetBalance returns the native balance of a bech32 address
func (nm *Manager) GetBalance(address string) (float64, error) {
	pubkey, err := nm.conv.Decode(address)
	if err != nil {
		log.Error("getBalance - Decode", "address", address, "error", err)
		return 0, err
	}

	account, err := nm.proxy.GetAccount(context.Background(), sdkData.NewAddressFromBytes(pubkey))
	if err != nil {
		log.Error("getBalance - GetAccount", "address", address, "error", err)
		return 0, err
	}

	balance, err := account.GetBalance(nm.NetworkConfig.Denomination)
	if err != nil {
		log.Error("getBalance - GetBalance", "address", address, "error", err)
		return 0, err
	}

	return balance, nil
}

// GetAddressNonce returns the current account nonce of a bech32 address
func (nm *Manager) GetAddressNonce(address string) (uint64, error) {
	pubkey, err := nm.conv.Decode(address)
	if err != nil {
		log.Error("getAddressNonce - Decode", "address", address, "error", err)
		return 0, err
	}

	account, err := nm.proxy.GetAccount(context.Background(), sdkData.NewAddressFromBytes(pubkey))
	if err != nil {
		log.Error("getAddressNonce - GetAccount", "address", address, "error", err)
		return 0, err
	}

	return account.Nonce, nil
}

// SendPayment submits a native transfer of the given amount from the signer's
// address to the recipient and blocks until the network settles it. The
// transfer is irreversible once confirmed; verification against the backend
// is the caller's job.
func (nm *Manager) SendPayment(ctx context.Context, signer wallet.Signer, recipient string, amount float64) (string, error) {
	if signer == nil || signer.Address() == "" {
		return "", ErrNoActiveWallet
	}

	sender, ok := signer.(wallet.TransactionSender)
	if !ok {
		return "", fmt.Errorf("%w: signer can not submit transactions", ErrTransferRejected)
	}

	senderAddress, err := sdkData.NewAddressFromBech32String(signer.Address())
	if err != nil {
		log.Error("sendPayment - invalid sender address", "address", signer.Address(), "error", err)
		return "", ErrNoActiveWallet
	}

	txArgs, err := nm.proxy.GetDefaultTransactionArguments(ctx, senderAddress, nm.NetworkConfig)
	if err != nil {
		log.Error("unable to prepare the transaction creation arguments", "error", err)
		return "", fmt.Errorf("%w: %s", ErrTransferFailed, err.Error())
	}

	txArgs.RcvAddr = recipient
	txArgs.GasLimit = uint64(nm.NetworkConfig.MinGasLimit)

	bValue := big.NewFloat(amount)
	bValue.Mul(bValue, nm.fDenomination)
	iValue, _ := bValue.Int(nil)
	txArgs.Value = iValue.String()

	hash, err := sender.SendTransaction(ctx, txArgs)
	if err != nil {
		log.Error("signer did not submit the transfer", "error", err)
		return "", fmt.Errorf("%w: %s", ErrTransferRejected, err.Error())
	}

	err = nm.waitForCompletion(ctx, hash)
	if err != nil {
		return "", err
	}

	return hash, nil
}

// waitForCompletion polls the transaction status at a fixed interval until
// the network reports a terminal state or the attempt budget runs out
func (nm *Manager) waitForCompletion(ctx context.Context, hash string) error {
	endpoint := fmt.Sprintf("%s/transaction/%s/status", nm.cfg.Network.Proxy, hash)

	for attempt := 0; attempt < nm.confirmationAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(nm.confirmationInterval):
		}

		raw, err := utils.GetHTTP(endpoint)
		if err != nil {
			log.Warn("can not get transaction status", "hash", hash, "error", err)
			continue
		}

		res := &data.TransactionStatusResponse{}
		err = json.Unmarshal(raw, res)
		if err != nil {
			log.Warn("invalid transaction status response", "hash", hash, "error", err)
			continue
		}

		switch res.Data.Status {
		case txStatusPending, "":
			continue
		case txStatusSuccess:
			log.Debug("transfer confirmed", "hash", hash)
			return nil
		default:
			log.Error("transfer failed on chain", "hash", hash, "status", res.Data.Status)
			return fmt.Errorf("%w: status %s", ErrTransferFailed, res.Data.Status)
		}
	}

	return fmt.Errorf("%w: confirmation not reached after %d attempts", ErrTransferFailed, nm.confirmationAttempts)
}
