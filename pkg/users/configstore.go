package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/dirauth/dirauth/pkg/config"
)

// ConfigStore is the reference Store implementation: accounts are
// seeded from [[users]] entries in the config file, and directory
// imports are held in memory alongside them. Hosts with a real account
// database inject their own Store instead.
type ConfigStore struct {
	mu     sync.RWMutex
	byName map[string]*User
	hashes map[string]config.User
}

var _ Store = (*ConfigStore)(nil)

func NewConfigStore(cfg *config.Config) *ConfigStore {
	s := &ConfigStore{}
	s.Reseed(cfg.Users)
	return s
}

// Reseed replaces all config-provisioned accounts wholesale, keeping
// previously imported external identities.
func (s *ConfigStore) Reseed(seed []config.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	imported := make(map[string]*User)
	for name, u := range s.byName {
		if u.External {
			imported[name] = u
		}
	}

	s.byName = imported
	s.hashes = make(map[string]config.User, len(seed))
	for _, cu := range seed {
		key := strings.ToLower(cu.Name)
		s.byName[key] = &User{
			Name:        cu.Name,
			DisplayName: cu.DisplayName,
			Mail:        cu.Mail,
		}
		s.hashes[key] = cu
	}
}

func (s *ConfigStore) FindByUsername(ctx context.Context, name string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

func (s *ConfigStore) Create(ctx context.Context, candidate *User) (*User, error) {
	if candidate == nil || candidate.Name == "" {
		return nil, fmt.Errorf("users: cannot create account without a name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(candidate.Name)
	if _, ok := s.byName[key]; ok {
		return nil, fmt.Errorf("users: account %q already exists", candidate.Name)
	}

	stored := *candidate
	s.byName[key] = &stored
	created := stored
	return &created, nil
}

// Authenticate checks a username/password pair against the seeded
// hashes. External accounts never authenticate locally; their
// credentials belong to the directory.
func (s *ConfigStore) Authenticate(ctx context.Context, name, password string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := strings.ToLower(name)
	u, ok := s.byName[key]
	if !ok || u.External {
		return nil, nil
	}
	cu, ok := s.hashes[key]
	if !ok || cu.Disabled {
		return nil, nil
	}

	if cu.PassBcrypt != "" {
		decoded, err := hex.DecodeString(cu.PassBcrypt)
		if err != nil {
			return nil, fmt.Errorf("users: account %q has an invalid bcrypt hash", name)
		}
		if bcrypt.CompareHashAndPassword(decoded, []byte(password)) != nil {
			return nil, nil
		}
		found := *u
		return &found, nil
	}

	if cu.PassSHA256 != "" {
		hash := sha256.Sum256([]byte(password))
		if !strings.EqualFold(hex.EncodeToString(hash[:]), cu.PassSHA256) {
			return nil, nil
		}
		found := *u
		return &found, nil
	}

	return nil, nil
}
