package store

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	keyFileName  = "store.key"
	dataFileName = "tokens.enc"
)

// FileStore persists values in an encrypted file, standing in for the
// platform keychain on desktop and headless builds. A random 256-bit key
// lives in a 0600 key file next to the data file; the JSON payload is
// sealed with XChaCha20-Poly1305, nonce prepended.
type FileStore struct {
	lock sync.Mutex
	aead cipher.AEAD
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens (or initialises) an encrypted store inside dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "FileStore.New MkdirAll")
	}

	key, err := loadOrCreateKey(filepath.Join(dir, keyFileName))
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.New NewX")
	}

	return &FileStore{
		aead: aead,
		path: filepath.Join(dir, dataFileName),
	}, nil
}

func (fs *FileStore) Get(ctx context.Context, key string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (fs *FileStore) Set(ctx context.Context, key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}

	values[key] = value
	return fs.save(values)
}

func (fs *FileStore) Remove(ctx context.Context, key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	return fs.save(values)
}

func (fs *FileStore) load() (map[string]string, error) {
	sealed, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.load ReadFile")
	}

	nonceSize := fs.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, errors.New("FileStore.load truncated data file")
	}

	plaintext, err := fs.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.load Open")
	}

	values := map[string]string{}
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, errors.Wrap(err, "FileStore.load Unmarshal")
	}
	return values, nil
}

// save seals and writes the value map, using a temp file and rename so a
// crash mid-write cannot leave a corrupt data file behind.
func (fs *FileStore) save(values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "FileStore.save Marshal")
	}

	nonce := make([]byte, fs.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return errors.Wrap(err, "FileStore.save rand.Read")
	}
	sealed := fs.aead.Seal(nonce, nonce, plaintext, nil)

	tmpPath := fs.path + ".tmp"
	if err := os.WriteFile(tmpPath, sealed, 0o600); err != nil {
		return errors.Wrap(err, "FileStore.save WriteFile")
	}
	if err := os.Rename(tmpPath, fs.path); err != nil {
		return errors.Wrap(err, "FileStore.save Rename")
	}
	return nil
}

func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, errors.New("FileStore key file has wrong size")
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "FileStore reading key file")
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, errors.Wrap(err, "FileStore generating key")
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, errors.Wrap(err, "FileStore writing key file")
	}
	return key, nil
}
