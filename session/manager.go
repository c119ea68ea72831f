package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"

	"github.com/lampochka7181/CryptoEuroMillionsBot/backend"
	"github.com/lampochka7181/CryptoEuroMillionsBot/data"
	"github.com/lampochka7181/CryptoEuroMillionsBot/wallet"
)

var log = logger.GetOrCreate("session")

// Event is a typed notification the manager emits towards the UI layer
type Event int

const (
	// SessionEstablished - a wallet was authenticated and a session exists
	SessionEstablished Event = iota
	// SessionCleared - the session was torn down
	SessionCleared
)

// Manager owns the authenticated session: it proves address ownership to the
// backend, keeps the session across restarts and tears it down on disconnect.
type Manager struct {
	signer  wallet.Signer
	backend *backend.Client
	storage *Storage

	mut           sync.RWMutex
	current       *data.Session
	disconnecting bool
	events        chan Event
}

// NewManager - creates a new session Manager object and subscribes it to the
// signer's disconnect notifications
func NewManager(signer wallet.Signer, backendClient *backend.Client, storage *Storage) *Manager {
	m := &Manager{
		signer:  signer,
		backend: backendClient,
		storage: storage,
		events:  make(chan Event, 8),
	}

	if signer != nil {
		go m.watchSigner()
	}

	return m
}

func (m *Manager) watchSigner() {
	for range m.signer.Disconnects() {
		log.Debug("signer reported disconnect")
		m.Disconnect()
	}
}

// Connect runs the whole authentication flow: signer handshake, bounded
// polling for the address, challenge signing and the token exchange with its
// register / session-info fallbacks. On success the session is persisted.
func (m *Manager) Connect(ctx context.Context) error {
	if m.signer == nil {
		return ErrNoWalletFound
	}

	err := m.signer.Connect(ctx)
	if err != nil {
		log.Warn("signer connect failed, retrying", "error", err)
		time.Sleep(connectRetryDelay)
		err = m.signer.Connect(ctx)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrConnectFailed, err.Error())
		}
	}

	address, err := m.awaitAddress(ctx)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(challengeFormat, address, time.Now().UnixNano()/int64(time.Millisecond))

	messageSigner, ok := m.signer.(wallet.MessageSigner)
	if !ok {
		return ErrSigningUnsupported
	}

	rawSignature, err := messageSigner.SignMessage([]byte(message))
	if err != nil {
		log.Error("can not sign challenge", "error", err)
		return fmt.Errorf("%w: %s", ErrSigningFailed, err.Error())
	}
	signature := base64.StdEncoding.EncodeToString(rawSignature)

	token, err := m.backend.WalletConnect(address, signature, message)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrAuthenticationFailed, err.Error())
	}

	if token == "" {
		token, err = m.registerFallback(address)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrAuthenticationFailed, err.Error())
		}
	}
	if token == "" {
		return ErrAuthenticationFailed
	}

	err = m.storage.Save(token, address)
	if err != nil {
		log.Error("can not persist session", "error", err)
		return err
	}

	m.mut.Lock()
	m.current = &data.Session{WalletAddress: address, Token: token}
	m.mut.Unlock()

	log.Info("session established", "address", address)
	m.emit(SessionEstablished)

	return nil
}

// awaitAddress polls the signer for its address, since the key may be
// populated asynchronously after the handshake resolves
func (m *Manager) awaitAddress(ctx context.Context) (string, error) {
	address := m.signer.Address()
	if address != "" {
		return address, nil
	}

	for attempt := 0; attempt < addressRetries; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(addressRetryDelay):
		}

		address = m.signer.Address()
		if address != "" {
			return address, nil
		}
	}

	return "", ErrAddressUnavailable
}

// registerFallback is taken when wallet-connect answered without a token:
// first-time addresses get registered; an already-registered conflict falls
// back to a session-info fetch.
func (m *Manager) registerFallback(address string) (string, error) {
	token, err := m.backend.Register(address)
	if err == nil {
		return token, nil
	}

	if !backend.IsConflict(err) {
		return "", err
	}

	log.Debug("wallet already registered, fetching session info", "address", address)
	res, err := m.backend.Me("")
	if err != nil {
		return "", err
	}

	return res.AnyToken(), nil
}

// RestoreSession rehydrates the persisted session at startup. The stored
// token is validated against the backend; stale data is purged. The signer is
// never prompted, beyond a best-effort background reconnect.
func (m *Manager) RestoreSession(ctx context.Context) bool {
	stored, err := m.storage.Load()
	if err != nil {
		log.Warn("can not read stored session", "error", err)
		return false
	}
	if stored == nil || stored.AuthToken == "" || stored.WalletAddress == "" {
		return false
	}

	_, err = m.backend.Me(stored.AuthToken)
	if err != nil {
		log.Debug("stored token no longer valid, purging", "error", err)
		_ = m.storage.Clear()
		return false
	}

	m.mut.Lock()
	m.current = &data.Session{
		WalletAddress: stored.WalletAddress,
		Token:         stored.AuthToken,
	}
	m.mut.Unlock()

	log.Info("session restored", "address", stored.WalletAddress)
	m.emit(SessionEstablished)

	if m.signer != nil && !m.signer.Connected() {
		go func() {
			err := m.signer.Connect(context.Background())
			if err != nil {
				log.Debug("could not restore signer connection", "error", err)
			}
		}()
	}

	return true
}

// Disconnect clears the persisted and in-memory session, then asks the
// signer to disconnect. A signer error here means it was already gone and is
// swallowed. Overlapping teardowns are ignored.
func (m *Manager) Disconnect() {
	m.mut.Lock()
	if m.disconnecting {
		m.mut.Unlock()
		return
	}
	m.disconnecting = true
	hadSession := m.current != nil
	m.current = nil
	m.mut.Unlock()

	err := m.storage.Clear()
	if err != nil {
		log.Warn("can not clear stored session", "error", err)
	}

	if m.signer != nil {
		_ = m.signer.Disconnect()
	}

	if hadSession {
		log.Info("session cleared")
		m.emit(SessionCleared)
	}

	m.mut.Lock()
	m.disconnecting = false
	m.mut.Unlock()
}

// Current returns the active session, or nil
func (m *Manager) Current() *data.Session {
	m.mut.RLock()
	defer m.mut.RUnlock()

	return m.current
}

// NeedsReconnect is true when the signer reports an address different from
// the session's. The session is not torn down on a mismatch; the signer may
// still be initializing.
func (m *Manager) NeedsReconnect() bool {
	m.mut.RLock()
	current := m.current
	m.mut.RUnlock()

	if current == nil || m.signer == nil {
		return false
	}

	address := m.signer.Address()

	return address != "" && address != current.WalletAddress
}

// Events is the manager's notification channel towards the UI layer
func (m *Manager) Events() <-chan Event {
	return m.events
}

func (m *Manager) emit(event Event) {
	select {
	case m.events <- event:
	default:
	}
}
