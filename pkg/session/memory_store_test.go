package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/sessionkit/pkg/session"
)

func seedStore(t *testing.T, opts ...session.StoreOption) *session.MemoryStore {
	t.Helper()

	users := session.NewInMemoryUserRepo()
	user, err := session.NewUser("1", "admin", "admin")
	require.NoError(t, err)
	users.AddUser(user)

	store := session.NewMemoryStore(users, opts...)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMemoryStore_Authenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t)
		sess, err := store.Authenticate(ctx, session.Credentials{Username: "admin", Password: "admin"})
		require.NoError(t, err)
		assert.True(t, sess.Authenticated)
		assert.NotEmpty(t, sess.ID)
		assert.Equal(t, "1", sess.UserID)
		assert.Equal(t, "admin", sess.Username)

		found, err := store.Lookup(ctx, sess.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, *sess, *found)
	})

	t.Run("unknown user and wrong password fail identically", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t)

		_, errUnknown := store.Authenticate(ctx, session.Credentials{Username: "ghost", Password: "admin"})
		_, errWrong := store.Authenticate(ctx, session.Credentials{Username: "admin", Password: "wrong"})

		assert.ErrorIs(t, errUnknown, session.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, session.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("distinct ids per login", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t)
		creds := session.Credentials{Username: "admin", Password: "admin"}

		first, err := store.Authenticate(ctx, creds)
		require.NoError(t, err)
		second, err := store.Authenticate(ctx, creds)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestMemoryStore_Lookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("absent id is not an error", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t)
		sess, err := store.Lookup(ctx, "never-issued")
		assert.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t)
		sess, err := store.Authenticate(ctx, session.Credentials{Username: "admin", Password: "admin"})
		require.NoError(t, err)

		first, err := store.Lookup(ctx, sess.ID)
		require.NoError(t, err)
		first.Username = "mutated"

		second, err := store.Lookup(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin", second.Username)
	})
}

func TestMemoryStore_Remove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seedStore(t)

	sess, err := store.Authenticate(ctx, session.Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)

	removed, err := store.Remove(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Idempotent: the second removal reports nothing to do.
	removed, err = store.Remove(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	found, err := store.Lookup(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStore_ConcurrentAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := session.NewInMemoryUserRepo()

	const n = 32
	for i := 0; i < n; i++ {
		user, err := session.NewUser(fmt.Sprintf("id-%d", i), fmt.Sprintf("user-%d", i), "secret")
		require.NoError(t, err)
		users.AddUser(user)
	}

	store := session.NewMemoryStore(users)
	t.Cleanup(func() { store.Close() })

	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := store.Authenticate(ctx, session.Credentials{
				Username: fmt.Sprintf("user-%d", i),
				Password: "secret",
			})
			assert.NoError(t, err)
			ids[i] = sess.ID
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for i, id := range ids {
		require.NotEmpty(t, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate session id")
		seen[id] = struct{}{}

		found, err := store.Lookup(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, fmt.Sprintf("id-%d", i), found.UserID)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seedStore(t, session.WithTTL(30*time.Millisecond))

	sess, err := store.Authenticate(ctx, session.Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)

	found, err := store.Lookup(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	time.Sleep(60 * time.Millisecond)

	found, err = store.Lookup(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seedStore(t,
		session.WithTTL(20*time.Millisecond),
		session.WithCleanupInterval(10*time.Millisecond),
	)

	_, err := store.Authenticate(ctx, session.Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_NoUserCascade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := session.NewInMemoryUserRepo()
	user, err := session.NewUser("1", "admin", "admin")
	require.NoError(t, err)
	users.AddUser(user)

	store := session.NewMemoryStore(users)
	t.Cleanup(func() { store.Close() })

	sess, err := store.Authenticate(ctx, session.Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)

	// Removing the user does not invalidate sessions already minted for it.
	require.True(t, users.RemoveUser("admin"))

	found, err := store.Lookup(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}
