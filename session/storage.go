package session

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"github.com/lampochka7181/CryptoEuroMillionsBot/data"
)

// Storage persists the authenticated session as a small JSON file. Writes
// are sequential and last-writer-wins.
type Storage struct {
	path string
	mut  sync.Mutex
}

// NewStorage - creates a new session Storage object
func NewStorage(path string) *Storage {
	return &Storage{path: path}
}

// Load reads the stored session; a missing file is not an error and yields nil
func (s *Storage) Load() (*data.StoredSession, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	bytes, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stored := &data.StoredSession{}
	err = json.Unmarshal(bytes, stored)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// Save writes the token and wallet address
func (s *Storage) Save(token string, walletAddress string) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	bytes, err := json.Marshal(&data.StoredSession{
		AuthToken:     token,
		WalletAddress: walletAddress,
	})
	if err != nil {
		return err
	}

	return ioutil.WriteFile(s.path, bytes, 0600)
}

// Clear removes the stored session; clearing an empty storage is a no-op
func (s *Storage) Clear() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
