package repository

import (
	"errors"
	"regexp"
	"sync"
	"time"

	"gaia_backend/internal/domain"
)

var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrDuplicateEmail   = errors.New("user already registered with this email")
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so a caller cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const minPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address has a local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

type UserRepository struct {
	mu      sync.RWMutex
	users   []*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*domain.User)}
}

// Register validates the signup fields and appends a new user.
// Emails are matched case-sensitively, exactly as entered.
func (r *UserRepository) Register(username, email, password, confirmPassword string) (*domain.User, error) {
	if username == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, ErrMissingFields
	}
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	r.nextID++
	u := &domain.User{
		ID:        r.nextID,
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now(),
	}
	r.users = append(r.users, u)
	r.byEmail[email] = u

	out := *u
	return &out, nil
}

func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) GetByID(id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

// VerifyCredentials checks an email/password pair and returns the user.
func (r *UserRepository) VerifyCredentials(email, password string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok || u.Password != password {
		return nil, ErrInvalidCredentials
	}
	out := *u
	return &out, nil
}

// SetPassword overwrites the stored password in place. No history is kept.
func (r *UserRepository) SetPassword(email, newPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return ErrUserNotFound
	}
	u.Password = newPassword
	return nil
}

// List returns all users in registration order.
func (r *UserRepository) List() []*domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out := *u
		res = append(res, &out)
	}
	return res
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
