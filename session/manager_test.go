package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampochka7181/CryptoEuroMillionsBot/backend"
)

// fakeSigner implements wallet.Signer plus the message-signing capability
type fakeSigner struct {
	mut             sync.Mutex
	pendingAddr     string
	addressDelay    time.Duration
	address         string
	connected       bool
	connectErr      error
	connectFailures int
	signErr         error
	signedWith      []byte
	disconnects     chan struct{}
}

func newFakeSigner(address string) *fakeSigner {
	return &fakeSigner{
		pendingAddr: address,
		disconnects: make(chan struct{}, 1),
	}
}

func (s *fakeSigner) Connect(_ context.Context) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.connectFailures > 0 {
		s.connectFailures--
		return errors.New("handshake refused")
	}
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connected = true

	if s.addressDelay == 0 {
		s.address = s.pendingAddr
		return nil
	}

	go func() {
		time.Sleep(s.addressDelay)
		s.mut.Lock()
		s.address = s.pendingAddr
		s.mut.Unlock()
	}()

	return nil
}

func (s *fakeSigner) Disconnect() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	if !s.connected {
		return nil
	}
	s.connected = false
	s.address = ""
	select {
	case s.disconnects <- struct{}{}:
	default:
	}

	return nil
}

func (s *fakeSigner) Address() string {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.address
}

func (s *fakeSigner) Connected() bool {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.connected
}

func (s *fakeSigner) Disconnects() <-chan struct{} {
	return s.disconnects
}

func (s *fakeSigner) SignMessage(message []byte) ([]byte, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.signErr != nil {
		return nil, s.signErr
	}
	s.signedWith = message

	return []byte("signature"), nil
}

// bareSigner delegates the base handshake but deliberately does not expose
// the message-signing capability; plain embedding would promote it
type bareSigner struct {
	inner *fakeSigner
}

func (s *bareSigner) Connect(ctx context.Context) error { return s.inner.Connect(ctx) }
func (s *bareSigner) Disconnect() error                 { return s.inner.Disconnect() }
func (s *bareSigner) Address() string                   { return s.inner.Address() }
func (s *bareSigner) Connected() bool                   { return s.inner.Connected() }
func (s *bareSigner) Disconnects() <-chan struct{}      { return s.inner.Disconnects() }

func newManagerWithBackend(t *testing.T, signer *fakeSigner, handler http.Handler) (*Manager, *Storage, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	storage := NewStorage(filepath.Join(t.TempDir(), "session.json"))

	return NewManager(signer, backend.NewClient(server.URL), storage), storage, server
}

func TestConnectEstablishesAndPersistsSession(t *testing.T) {
	signer := newFakeSigner("erd1player")

	manager, storage, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/wallet-connect", r.URL.Path)
		w.Write([]byte(`{"token":"tok-1"}`))
	}))

	err := manager.Connect(context.Background())
	require.NoError(t, err)

	sess := manager.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "erd1player", sess.WalletAddress)
	assert.Equal(t, "tok-1", sess.Token)

	assert.Contains(t, string(signer.signedWith), "erd1player")
	assert.Contains(t, string(signer.signedWith), "Crypto EuroMillions")

	stored, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "tok-1", stored.AuthToken)
	assert.Equal(t, "erd1player", stored.WalletAddress)

	select {
	case event := <-manager.Events():
		assert.Equal(t, SessionEstablished, event)
	default:
		t.Fatal("expected a SessionEstablished event")
	}
}

func TestConnectPollsForLateAddress(t *testing.T) {
	signer := newFakeSigner("erd1late")
	signer.addressDelay = 700 * time.Millisecond

	manager, _, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1"}`))
	}))

	err := manager.Connect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, manager.Current())
}

func TestConnectFailsWhenAddressNeverAppears(t *testing.T) {
	signer := newFakeSigner("")
	backendCalls := int32(0)

	manager, _, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&backendCalls, 1)
	}))

	err := manager.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAddressUnavailable)
	assert.Zero(t, atomic.LoadInt32(&backendCalls))
}

func TestConnectRetriesTransientSignerFailure(t *testing.T) {
	signer := newFakeSigner("erd1player")
	signer.connectFailures = 1

	manager, _, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1"}`))
	}))

	err := manager.Connect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, manager.Current())
	assert.Equal(t, "erd1player", manager.Current().WalletAddress)
}

func TestConnectFailsWhenSignerKeepsRefusing(t *testing.T) {
	signer := newFakeSigner("erd1player")
	signer.connectErr = errors.New("no device attached")

	manager, _, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1"}`))
	}))

	err := manager.Connect(context.Background())
	assert.ErrorIs(t, err, ErrConnectFailed)
	assert.Contains(t, err.Error(), "no device attached")
	assert.Nil(t, manager.Current())
}

func TestConnectWithoutSigner(t *testing.T) {
	storage := NewStorage(filepath.Join(t.TempDir(), "session.json"))
	manager := NewManager(nil, backend.NewClient("http://127.0.0.1:1"), storage)

	err := manager.Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoWalletFound)
}

func TestConnectSigningUnsupported(t *testing.T) {
	storage := NewStorage(filepath.Join(t.TempDir(), "session.json"))
	manager := NewManager(&bareSigner{inner: newFakeSigner("erd1player")}, backend.NewClient("http://127.0.0.1:1"), storage)

	err := manager.Connect(context.Background())
	assert.ErrorIs(t, err, ErrSigningUnsupported)
}

func TestConnectRegisterFallbackIssuesToken(t *testing.T) {
	signer := newFakeSigner("erd1new")

	manager, _, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/wallet-connect":
			w.Write([]byte(`{}`))
		case "/auth/register":
			w.Write([]byte(`{"access_token":"tok-reg"}`))
		default:
			t.Fatalf("unexpected call to %s", r.URL.Path)
		}
	}))

	err := manager.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-reg", manager.Current().Token)
}

func TestConnectExhaustedFallbacksFailAuthentication(t *testing.T) {
	signer := newFakeSigner("erd1known")
	calls := make([]string, 0)

	manager, _, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/auth/wallet-connect":
			w.Write([]byte(`{}`))
		case "/auth/register":
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"already registered"}`))
		case "/auth/me":
			assert.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"missing token"}`))
		}
	}))

	err := manager.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Equal(t, []string{"/auth/wallet-connect", "/auth/register", "/auth/me"}, calls)
	assert.Nil(t, manager.Current())
}

func TestDisconnectClearsPersistedSession(t *testing.T) {
	signer := newFakeSigner("erd1player")

	manager, storage, server := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1"}`))
	}))

	require.NoError(t, manager.Connect(context.Background()))
	<-manager.Events()

	manager.Disconnect()

	assert.Nil(t, manager.Current())
	stored, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.False(t, signer.Connected())

	// a fresh startup over the same storage finds no session
	fresh := NewManager(newFakeSigner("erd1player"), backend.NewClient(server.URL), storage)
	assert.False(t, fresh.RestoreSession(context.Background()))
}

func TestRestoreSessionValidToken(t *testing.T) {
	signer := newFakeSigner("erd1player")

	manager, storage, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, storage.Save("tok-1", "erd1player"))

	assert.True(t, manager.RestoreSession(context.Background()))
	sess := manager.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "erd1player", sess.WalletAddress)
}

func TestRestoreSessionPurgesStaleToken(t *testing.T) {
	signer := newFakeSigner("erd1player")

	manager, storage, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"expired"}`))
	}))

	require.NoError(t, storage.Save("tok-stale", "erd1player"))

	assert.False(t, manager.RestoreSession(context.Background()))
	assert.Nil(t, manager.Current())

	stored, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestNeedsReconnectOnAddressMismatch(t *testing.T) {
	signer := newFakeSigner("erd1other")
	signer.addressDelay = 500 * time.Millisecond

	manager, storage, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, storage.Save("tok-1", "erd1player"))
	require.True(t, manager.RestoreSession(context.Background()))

	// signer still initializing: no address, no flag
	assert.False(t, manager.NeedsReconnect())

	// once the signer reports the foreign address, the flag goes up
	require.Eventually(t, manager.NeedsReconnect, 3*time.Second, 10*time.Millisecond)

	// the session itself is not torn down by the mismatch
	assert.NotNil(t, manager.Current())
}

func TestSignerDisconnectEventTearsSessionDown(t *testing.T) {
	signer := newFakeSigner("erd1player")

	manager, storage, _ := newManagerWithBackend(t, signer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1"}`))
	}))

	require.NoError(t, manager.Connect(context.Background()))
	<-manager.Events()

	require.NoError(t, signer.Disconnect())

	require.Eventually(t, func() bool {
		return manager.Current() == nil
	}, time.Second, 10*time.Millisecond)

	stored, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
}
