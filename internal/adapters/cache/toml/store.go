package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/nvallen/paywise-cli/internal/domain"
	"github.com/nvallen/paywise-cli/internal/ports"
)

const (
	stateDirKey     = "cache.dir"
	stateConfigDir  = ".paywise"
	stateSubDir     = "state"
	userFileName    = "user.toml"
	historyFileName = "transactions.toml"
	sessionFileName = "session.toml"
	cacheFileMode   = 0o600
	cacheDirMode    = 0o700
	tempFilePattern = ".cache-*.toml.tmp"
)

// Store persists the three session entries as independent TOML files under
// a state directory. Each entry survives restarts on its own; a crash
// between writes leaves the others intact.
type Store struct {
	dir string
	mu  *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	dirLockMap     = map[string]*sync.RWMutex{}
)

var _ ports.SessionCache = (*Store)(nil)

// NewStore resolves the state directory from configuration, defaulting to
// ~/.paywise/state.
func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(stateDirKey, filepath.Join(homeDir, stateConfigDir, stateSubDir))

	dir := cfg.GetString(stateDirKey)
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve cache directory: %w", err)
	}
	dir = filepath.Clean(dir)

	return &Store{dir: dir, mu: lockForDir(dir)}, nil
}

func (s *Store) LoadUser(ctx context.Context) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var file userFileSchema
	if err := s.readFile(userFileName, &file); err != nil {
		return domain.User{}, err
	}
	if file.User == nil {
		return domain.User{}, domain.ErrNotCached
	}

	return file.User.toDomain(), nil
}

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	encoded := toUserSchema(user)
	file := userFileSchema{Version: currentSchemaVersion, User: &encoded}
	return s.writeFile(userFileName, file)
}

func (s *Store) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var file historyFileSchema
	if err := s.readFile(historyFileName, &file); err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(file.Transactions))
	for _, entry := range file.Transactions {
		transactions = append(transactions, entry.toDomain())
	}
	return transactions, nil
}

func (s *Store) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := historyFileSchema{Version: currentSchemaVersion}
	file.Transactions = make([]transactionSchema, 0, len(transactions))
	for _, transaction := range transactions {
		file.Transactions = append(file.Transactions, toTransactionSchema(transaction))
	}
	return s.writeFile(historyFileName, file)
}

func (s *Store) LoadLoggedIn(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var file sessionFileSchema
	if err := s.readFile(sessionFileName, &file); err != nil {
		return false, err
	}
	return file.LoggedIn, nil
}

func (s *Store) SaveLoggedIn(ctx context.Context, loggedIn bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := sessionFileSchema{Version: currentSchemaVersion, LoggedIn: loggedIn}
	return s.writeFile(sessionFileName, file)
}

// Clear removes all three entries, ignoring ones that were never written.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{userFileName, historyFileName, sessionFileName} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove cache entry %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) readFile(name string, out interface{ validateVersion() error }) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotCached
		}
		return fmt.Errorf("read cache entry %s: %w", name, err)
	}

	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode cache entry %s: %w", name, err)
	}
	if err := out.validateVersion(); err != nil {
		return err
	}
	return nil
}

func (s *Store) writeFile(name string, file any) error {
	if err := os.MkdirAll(s.dir, cacheDirMode); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", name, err)
	}

	tempFile, err := os.CreateTemp(s.dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp cache file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tempName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replace cache entry %s: %w", name, err)
	}
	cleanup = false
	return nil
}

func lockForDir(dir string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := dirLockMap[dir]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	dirLockMap[dir] = mu
	return mu
}
