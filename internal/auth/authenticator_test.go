package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory AccountStore for exercising the auth core
// without a database.
type memStore struct {
	nextID   int64
	accounts map[int64]*model.Account
}

func newMemStore() *memStore {
	return &memStore{
		nextID:   1,
		accounts: map[int64]*model.Account{},
	}
}

func (s *memStore) FindByUsername(_ context.Context, username string) (*model.Account, error) {
	for _, account := range s.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, errors.New("account not found", errors.CategoryNotFound)
}

func (s *memStore) FindByID(_ context.Context, id int64) (*model.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, errors.New("account not found", errors.CategoryNotFound)
	}
	copied := *account
	return &copied, nil
}

func (s *memStore) Insert(_ context.Context, account *model.Account) error {
	for _, existing := range s.accounts {
		if existing.Username == account.Username {
			return errors.New("username is already taken", errors.CategoryConflict)
		}
	}
	account.ID = s.nextID
	s.nextID++
	copied := *account
	s.accounts[account.ID] = &copied
	return nil
}

func (s *memStore) Update(_ context.Context, account *model.Account) error {
	if _, ok := s.accounts[account.ID]; !ok {
		return errors.New("account not found", errors.CategoryNotFound)
	}
	copied := *account
	s.accounts[account.ID] = &copied
	return nil
}

func (s *memStore) UpdateHash(_ context.Context, id int64, hash, salt []byte) error {
	account, ok := s.accounts[id]
	if !ok {
		return errors.New("account not found", errors.CategoryNotFound)
	}
	account.PasswordHash = hash
	account.PasswordSalt = salt
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.accounts[id]; !ok {
		return errors.New("account not found", errors.CategoryNotFound)
	}
	delete(s.accounts, id)
	return nil
}

type testConfig struct{}

func (testConfig) GetSigningKey() string   { return string(testSigningKey) }
func (testConfig) GetTokenExpiration() int { return auth.DefaultTokenExpiration }
func (testConfig) GetIssuer() string       { return "herogame-test" }

func newTestAuthenticator() (*auth.Authenticator, *memStore) {
	store := newMemStore()
	return auth.NewAuthenticator(store, testConfig{}), store
}

func TestAuthenticator_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hash and salt pair, never the plaintext", func(t *testing.T) {
		auther, store := newTestAuthenticator()

		account, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)
		require.NotZero(t, account.ID)

		stored := store.accounts[account.ID]
		assert.Len(t, stored.PasswordHash, auth.HashSize)
		assert.Len(t, stored.PasswordSalt, auth.SaltSize)
		assert.NotContains(t, string(stored.PasswordHash), "wonderland")
	})

	t.Run("rejects a blank password before touching the store", func(t *testing.T) {
		auther, store := newTestAuthenticator()

		_, err := auther.Register(ctx, &model.Account{Username: "bob"}, "  ")
		require.Error(t, err)
		assert.Equal(t, auth.TextCodePasswordRequired, auth.TextCode(err))
		assert.Empty(t, store.accounts)
	})

	t.Run("propagates the username conflict", func(t *testing.T) {
		auther, _ := newTestAuthenticator()

		_, err := auther.Register(ctx, &model.Account{Username: "carol"}, "pw-one")
		require.NoError(t, err)

		_, err = auther.Register(ctx, &model.Account{Username: "carol"}, "pw-two")
		require.Error(t, err)

		var rich *errors.Error
		require.True(t, errors.As(err, &rich))
		assert.Equal(t, errors.CategoryConflict, rich.Category)
	})
}

func TestAuthenticator_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for the right credentials", func(t *testing.T) {
		auther, _ := newTestAuthenticator()
		registered, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)

		account, token, err := auther.Login(ctx, "alice", "wonderland")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
		assert.NotEmpty(t, token)

		subjectID, err := auther.TokenService().Validate(token, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, registered.ID, subjectID)
	})

	t.Run("unknown username and wrong password fail identically", func(t *testing.T) {
		auther, _ := newTestAuthenticator()
		_, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)

		_, _, errUnknown := auther.Login(ctx, "nobody", "wonderland")
		_, _, errWrongPw := auther.Login(ctx, "alice", "not-wonderland")

		require.Error(t, errUnknown)
		require.Error(t, errWrongPw)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
		assert.Equal(t, auth.TextCode(errUnknown), auth.TextCode(errWrongPw))
	})

	t.Run("rejects blank credentials with the generic failure", func(t *testing.T) {
		auther, _ := newTestAuthenticator()

		_, _, err := auther.Login(ctx, "", "")
		require.Error(t, err)
		assert.Equal(t, auth.TextCodeInvalidCredentials, auth.TextCode(err))
	})
}

func TestAuthenticator_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("renames without touching the credential", func(t *testing.T) {
		auther, store := newTestAuthenticator()
		registered, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)
		beforeHash := append([]byte{}, store.accounts[registered.ID].PasswordHash...)

		updated, err := auther.Update(ctx, registered.ID, "alice2", auth.KeepPassword())
		require.NoError(t, err)
		assert.Equal(t, "alice2", updated.Username)
		assert.Equal(t, beforeHash, store.accounts[registered.ID].PasswordHash)

		// old password still valid after the rename
		_, _, err = auther.Login(ctx, "alice2", "wonderland")
		assert.NoError(t, err)
	})

	t.Run("password change swaps hash and salt together", func(t *testing.T) {
		auther, store := newTestAuthenticator()
		registered, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)
		beforeHash := append([]byte{}, store.accounts[registered.ID].PasswordHash...)
		beforeSalt := append([]byte{}, store.accounts[registered.ID].PasswordSalt...)

		_, err = auther.Update(ctx, registered.ID, "", auth.SetPassword("looking-glass"))
		require.NoError(t, err)

		assert.NotEqual(t, beforeHash, store.accounts[registered.ID].PasswordHash)
		assert.NotEqual(t, beforeSalt, store.accounts[registered.ID].PasswordSalt)

		_, _, err = auther.Login(ctx, "alice", "wonderland")
		assert.Error(t, err)
		_, _, err = auther.Login(ctx, "alice", "looking-glass")
		assert.NoError(t, err)
	})

	t.Run("rename onto an existing username conflicts", func(t *testing.T) {
		auther, _ := newTestAuthenticator()
		_, err := auther.Register(ctx, &model.Account{Username: "alice"}, "pw-a")
		require.NoError(t, err)
		bob, err := auther.Register(ctx, &model.Account{Username: "bob"}, "pw-b")
		require.NoError(t, err)

		_, err = auther.Update(ctx, bob.ID, "alice", auth.KeepPassword())
		require.Error(t, err)
		assert.Equal(t, auth.TextCodeUsernameTaken, auth.TextCode(err))
	})

	t.Run("updating a missing account is not found", func(t *testing.T) {
		auther, _ := newTestAuthenticator()

		_, err := auther.Update(ctx, 404, "ghost", auth.KeepPassword())
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestAuthenticator_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token for an existing subject passes the gate", func(t *testing.T) {
		auther, _ := newTestAuthenticator()
		registered, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)

		_, token, err := auther.Login(ctx, "alice", "wonderland")
		require.NoError(t, err)

		subjectID, err := auther.Authorize(ctx, token, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, registered.ID, subjectID)
	})

	t.Run("valid token fails once the subject is deleted", func(t *testing.T) {
		auther, _ := newTestAuthenticator()
		registered, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)

		_, token, err := auther.Login(ctx, "alice", "wonderland")
		require.NoError(t, err)

		require.NoError(t, auther.Delete(ctx, registered.ID))

		_, err = auther.Authorize(ctx, token, time.Now().UTC())
		require.Error(t, err)
		assert.True(t, auth.IsSubjectGone(err))
	})

	t.Run("expired token fails before the store is consulted", func(t *testing.T) {
		auther, _ := newTestAuthenticator()
		_, err := auther.Register(ctx, &model.Account{Username: "alice"}, "wonderland")
		require.NoError(t, err)

		_, token, err := auther.Login(ctx, "alice", "wonderland")
		require.NoError(t, err)

		future := time.Now().UTC().Add(8 * 24 * time.Hour)
		_, err = auther.Authorize(ctx, token, future)
		require.Error(t, err)
		assert.True(t, auth.IsTokenExpired(err))
	})

	t.Run("garbage token fails the gate", func(t *testing.T) {
		auther, _ := newTestAuthenticator()

		_, err := auther.Authorize(ctx, "garbage", time.Now().UTC())
		require.Error(t, err)
		assert.True(t, auth.IsAuthFailure(err))
	})
}

func TestAuthenticator_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting an absent account is not an error", func(t *testing.T) {
		auther, _ := newTestAuthenticator()
		assert.NoError(t, auther.Delete(ctx, 12345))
	})
}
