package auth

import (
	"context"
	"fmt"

	"github.com/herogame/herogame/internal/model"
)

// Logger is the minimal logging surface the auth package needs.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options.
type Config interface {
	GetSigningKey() string
	// GetTokenExpiration is the session token lifetime in hours.
	GetTokenExpiration() int
	GetIssuer() string
}

// CredentialStore is the persistence capability the auth core depends on.
// Implementations own credential records exclusively; the auth core never
// stores hashes or salts itself.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	FindByID(ctx context.Context, id int64) (*model.Account, error)
	// Insert fails with a conflict error when the username is already present.
	Insert(ctx context.Context, account *model.Account) error
	// UpdateHash replaces hash and salt together; they are never written
	// independently.
	UpdateHash(ctx context.Context, id int64, hash, salt []byte) error
	Delete(ctx context.Context, id int64) error
}

// AccountStore extends CredentialStore with the profile mutation used by
// account updates (username renames).
type AccountStore interface {
	CredentialStore
	Update(ctx context.Context, account *model.Account) error
}

// PasswordChange models the optional password on an account update as a
// named case rather than a nullable string.
type PasswordChange struct {
	plaintext string
	set       bool
}

// KeepPassword leaves the stored credential untouched.
func KeepPassword() PasswordChange {
	return PasswordChange{}
}

// SetPassword requests a hash+salt replacement from the given plaintext.
func SetPassword(plaintext string) PasswordChange {
	return PasswordChange{plaintext: plaintext, set: true}
}

// Requested reports whether a replacement was asked for.
func (p PasswordChange) Requested() bool {
	return p.set
}

// Plaintext returns the requested password. Only meaningful when
// Requested() is true.
func (p PasswordChange) Plaintext() string {
	return p.plaintext
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
