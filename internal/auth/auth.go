// Package auth keeps the bearer token sent to the item server.
package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idilsaglam/todo/internal/store/jsonstore"
)

const (
	credFileName = "credentials.json"

	// EnvToken overrides any saved token.
	EnvToken = "TODO_TOKEN"

	SourceEnv  = "env"
	SourceFile = "file"
)

// ErrEmptyToken is returned when saving a blank token.
var ErrEmptyToken = errors.New("empty token")

type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional (JWT or server-provided)
}

// Credentials reads and writes the token file under Dir.
type Credentials struct {
	Dir string
	now func() time.Time
}

func NewCredentials(dir string) *Credentials {
	return &Credentials{Dir: dir, now: time.Now}
}

func (c *Credentials) path() string { return filepath.Join(c.Dir, credFileName) }

// Get returns the active token, or nil when not logged in.
func (c *Credentials) Get() (*TokenInfo, error) {
	// 1) env override
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: SourceEnv}, nil
	}

	// 2) file
	var ti TokenInfo
	found, err := jsonstore.Load(c.path(), &ti)
	if err != nil {
		return nil, err
	}
	if !found || strings.TrimSpace(ti.Token) == "" {
		return nil, nil
	}
	ti.Token = stripBearer(ti.Token)
	ti.Source = SourceFile
	return &ti, nil
}

// Token returns just the token string, "" when not logged in.
func (c *Credentials) Token() (string, error) {
	ti, err := c.Get()
	if err != nil || ti == nil {
		return "", err
	}
	return ti.Token, nil
}

// Set saves token owner-only.
func (c *Credentials) Set(token string, expires *time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return ErrEmptyToken
	}
	ti := TokenInfo{
		Token:     token,
		Source:    SourceFile,
		CreatedAt: c.now(),
		ExpiresAt: expires,
	}
	return jsonstore.Save(c.path(), ti, 0o600)
}

// Delete removes the saved token.
func (c *Credentials) Delete() error {
	return jsonstore.Remove(c.path())
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
