package auth

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/herogame/herogame/internal/model"
)

// Authenticator is the auth core: credential verification, session token
// issuance, and the per-request token gate. It holds no per-request state;
// the only shared state is the signing key inside the token service.
type Authenticator struct {
	store  AccountStore
	tokens *TokenService
	logger Logger
}

// dummy credential pair verified against when the username is unknown, so
// the lookup-miss path does the same amount of crypto work as the
// wrong-password path.
var (
	dummyHash = make([]byte, HashSize)
	dummySalt = make([]byte, SaltSize)
)

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(store AccountStore, opts Config) *Authenticator {
	return &Authenticator{
		store:  store,
		tokens: NewTokenService([]byte(opts.GetSigningKey()), opts.GetTokenExpiration(), opts.GetIssuer(), defLogger{}),
		logger: defLogger{},
	}
}

// WithLogger replaces the logger on the authenticator and its token service.
func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	a.logger = logger
	a.tokens.logger = logger
	return a
}

// TokenService returns the token service used by this Authenticator.
func (a *Authenticator) TokenService() *TokenService {
	return a.tokens
}

// Login verifies the username/password pair and, on success, issues a
// session token. Unknown usernames and wrong passwords fail identically.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*model.Account, string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, "", ErrInvalidCredentials
	}

	account, err := a.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			// burn the same verification cost as a real mismatch
			_, _ = VerifyPassword(password, dummyHash, dummySalt)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to load account during login")
	}

	ok, err := VerifyPassword(password, account.PasswordHash, account.PasswordSalt)
	if err != nil {
		return nil, "", err
	}

	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(account.ID, time.Now().UTC())
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// Register creates a new account from the caller-supplied plaintext
// password. The plaintext is discarded once the hash+salt pair is computed.
func (a *Authenticator) Register(ctx context.Context, account *model.Account, password string) (*model.Account, error) {
	hash, salt, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = hash
	account.PasswordSalt = salt

	if err := a.store.Insert(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Update applies a username rename and/or a password change. The password
// is optional: KeepPassword leaves the stored credential untouched, and a
// requested change swaps hash and salt together.
func (a *Authenticator) Update(ctx context.Context, id int64, username string, change PasswordChange) (*model.Account, error) {
	account, err := a.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(username) != "" && username != account.Username {
		if _, err := a.store.FindByUsername(ctx, username); err == nil {
			return nil, errors.New("username "+username+" is already taken", errors.CategoryConflict).
				WithTextCode(TextCodeUsernameTaken).
				WithCode(errors.CodeConflict).
				WithMetadata(map[string]any{"username": username})
		} else if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check username availability")
		}
		account.Username = username
	}

	if err := a.store.Update(ctx, account); err != nil {
		return nil, err
	}

	if change.Requested() {
		hash, salt, err := HashPassword(change.Plaintext())
		if err != nil {
			return nil, err
		}
		if err := a.store.UpdateHash(ctx, account.ID, hash, salt); err != nil {
			return nil, err
		}
		account.PasswordHash = hash
		account.PasswordSalt = salt
	}

	return account, nil
}

// Delete removes the account and, with it, the credential record. Deleting
// an absent account is not an error.
func (a *Authenticator) Delete(ctx context.Context, id int64) error {
	if err := a.store.Delete(ctx, id); err != nil && !errors.IsNotFound(err) {
		return err
	}
	return nil
}

// Authorize runs the token gate for one request: parse, signature check,
// expiry check, then the existence re-check against the credential store.
// A cryptographically valid token whose subject has been deleted still
// fails. The gate runs on every request; validated tokens are never cached
// as trusted.
func (a *Authenticator) Authorize(ctx context.Context, tokenString string, now time.Time) (int64, error) {
	subjectID, err := a.tokens.Validate(tokenString, now)
	if err != nil {
		return 0, err
	}

	if _, err := a.store.FindByID(ctx, subjectID); err != nil {
		if errors.IsNotFound(err) {
			return 0, ErrSubjectGone
		}
		// store connectivity problems propagate unchanged
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to confirm token subject")
	}

	return subjectID, nil
}
