package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is a transient login attempt. It is parsed from a request body
// and never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is a stored account record. Username is the natural key. The password
// is kept only as a bcrypt hash.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
}

// NewUser builds a User with a bcrypt-hashed password. An empty id gets a
// generated UUID.
func NewUser(id, username, password string) (User, error) {
	if username == "" {
		return User{}, fmt.Errorf("session: username cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("session: failed to hash password: %w", err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	return User{ID: id, Username: username, PasswordHash: hash}, nil
}

// UserRepo maps usernames to user records. Implementations must be safe for
// unbounded concurrent callers; each operation is a single atomic map
// mutation.
type UserRepo interface {
	// FindUser returns the record for username, reporting whether it exists.
	FindUser(username string) (User, bool)

	// AddUser inserts the user if the username is absent. Adding an existing
	// username is a no-op, not an overwrite.
	AddUser(user User)

	// RemoveUser deletes the record, reporting whether one existed.
	RemoveUser(username string) bool
}

// InMemoryUserRepo implements UserRepo over a mutex-guarded map.
type InMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewInMemoryUserRepo creates an empty in-memory user repository.
func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{users: make(map[string]User)}
}

func (r *InMemoryUserRepo) FindUser(username string) (User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	return user, ok
}

func (r *InMemoryUserRepo) AddUser(user User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return
	}
	r.users[user.Username] = user
}

func (r *InMemoryUserRepo) RemoveUser(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[username]
	delete(r.users, username)
	return ok
}

var _ UserRepo = (*InMemoryUserRepo)(nil)
