package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

// Credentials is an Xtream account the user asked the player to
// remember.
type Credentials struct {
	Host     string
	Username string
	Password string
}

const (
	credentialsFile = "credentials.json"
	keyFile         = "secret.key"

	keyIterations = 100000
	keyLen        = 32
	saltLen       = 16
)

// sealedCredentials is the on-disk form. Only the password is sealed;
// host and username stay readable so support can diagnose a config
// without the machine key.
type sealedCredentials struct {
	Host     string `json:"host"`
	Username string `json:"username"`
	Password string `json:"password"`
	Salt     string `json:"salt"`
}

// SaveCredentials seals the password under a key derived from the
// machine-local secret and writes the account to disk.
func (s *Store) SaveCredentials(c Credentials) error {
	secret, err := s.secret()
	if err != nil {
		return err
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("store: generate salt: %w", err)
	}
	key := pbkdf2.Key(secret, salt, keyIterations, keyLen, sha256.New)
	sealed, err := seal(key, []byte(c.Password))
	if err != nil {
		return err
	}
	blob, err := json.MarshalIndent(sealedCredentials{
		Host:     c.Host,
		Username: c.Username,
		Password: sealed,
		Salt:     base64.StdEncoding.EncodeToString(salt),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path(credentialsFile), blob, 0o600); err != nil {
		return fmt.Errorf("store: write credentials: %w", err)
	}
	return nil
}

// LoadCredentials reads and unseals the remembered account. When no
// account is remembered the error wraps os.ErrNotExist.
func (s *Store) LoadCredentials() (Credentials, error) {
	blob, err := os.ReadFile(s.path(credentialsFile))
	if err != nil {
		return Credentials{}, fmt.Errorf("store: read credentials: %w", err)
	}
	var sc sealedCredentials
	if err := json.Unmarshal(blob, &sc); err != nil {
		return Credentials{}, fmt.Errorf("store: decode credentials: %w", err)
	}
	secret, err := s.secret()
	if err != nil {
		return Credentials{}, err
	}
	salt, err := base64.StdEncoding.DecodeString(sc.Salt)
	if err != nil {
		return Credentials{}, fmt.Errorf("store: decode salt: %w", err)
	}
	key := pbkdf2.Key(secret, salt, keyIterations, keyLen, sha256.New)
	pass, err := unseal(key, sc.Password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{
		Host:     sc.Host,
		Username: sc.Username,
		Password: string(pass),
	}, nil
}

// ClearCredentials forgets the remembered account. Clearing when
// nothing is remembered is not an error.
func (s *Store) ClearCredentials() error {
	err := os.Remove(s.path(credentialsFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: clear credentials: %w", err)
	}
	return nil
}

// secret returns the machine-local key material, generating and
// persisting it on first use.
func (s *Store) secret() ([]byte, error) {
	path := s.path(keyFile)
	b, err := os.ReadFile(path)
	if err == nil && len(b) == keyLen {
		return b, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("store: read key: %w", err)
	}
	b = make([]byte, keyLen)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("store: generate key: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return nil, fmt.Errorf("store: write key: %w", err)
	}
	return b, nil
}

func seal(key, plain []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("store: seal: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("store: seal: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("store: seal: %w", err)
	}
	out := gcm.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func unseal(key []byte, encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("store: unseal: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("store: unseal: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("store: unseal: %w", err)
	}
	if len(raw) < gcm.NonceSize() {
		return nil, errors.New("store: sealed value too short")
	}
	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("store: unseal: %w", err)
	}
	return plain, nil
}
