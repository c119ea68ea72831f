package wallet

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampochka7181/CryptoEuroMillionsBot/utils"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func connectAndWait(t *testing.T, w *DeviceWallet) {
	require.NoError(t, w.Connect(context.Background()))
	require.Eventually(t, func() bool {
		return w.Address() != ""
	}, 5*time.Second, 10*time.Millisecond)
}

func TestConnectDerivesAddressInBackground(t *testing.T) {
	w := NewDeviceWallet(testMnemonic, "")

	require.NoError(t, w.Connect(context.Background()))
	assert.True(t, w.Connected())

	require.Eventually(t, func() bool {
		return w.Address() != ""
	}, 5*time.Second, 10*time.Millisecond)

	address := w.Address()
	assert.Equal(t, "erd1", address[:4])
	assert.Len(t, address, 62)

	expected := utils.GetAddressFromPrivateKey(utils.GetPrivateKeyFromSeedphrase(testMnemonic))
	assert.Equal(t, expected, address)
}

func TestConnectRejectsInvalidSeedphrase(t *testing.T) {
	w := NewDeviceWallet("definitely not a mnemonic", "")

	err := w.Connect(context.Background())
	assert.ErrorIs(t, err, ErrInvalidSeedphrase)
	assert.False(t, w.Connected())
	assert.Empty(t, w.Address())
}

func TestSignMessageVerifiesWithStandardEd25519(t *testing.T) {
	w := NewDeviceWallet(testMnemonic, "")
	connectAndWait(t, w)

	message := []byte("Sign this message to authenticate")
	signature, err := w.SignMessage(message)
	require.NoError(t, err)

	privateKey := ed25519.NewKeyFromSeed(utils.GetPrivateKeyFromSeedphrase(testMnemonic))
	publicKey := privateKey.Public().(ed25519.PublicKey)
	assert.True(t, ed25519.Verify(publicKey, message, signature))
}

func TestSignMessageBeforeKeyIsReady(t *testing.T) {
	w := NewDeviceWallet(testMnemonic, "")

	_, err := w.SignMessage([]byte("too early"))
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestDisconnectWipesKeyAndNotifies(t *testing.T) {
	w := NewDeviceWallet(testMnemonic, "")
	connectAndWait(t, w)

	require.NoError(t, w.Disconnect())

	select {
	case <-w.Disconnects():
	default:
		t.Fatal("expected a disconnect notification")
	}

	assert.False(t, w.Connected())
	assert.Empty(t, w.Address())

	_, err := w.SignMessage([]byte("message"))
	assert.ErrorIs(t, err, ErrNotConnected)

	// the wallet can connect again after a teardown
	connectAndWait(t, w)
	assert.True(t, w.Connected())
}
