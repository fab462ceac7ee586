package user

import (
	"fmt"
	"strings"
	"time"
)

type Status int

const (
	StatusDisabled Status = 0
	StatusActive   Status = 1
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type User struct {
	id           string
	username     string
	nickname     string
	email        string
	passwordHash string
	isRoot       bool
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username, nickname, email string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 64 {
		return nil, fmt.Errorf("username too long (max 64 characters)")
	}
	if nickname == "" {
		nickname = username
	}

	now := time.Now().UTC()
	return &User{
		username:  username,
		nickname:  nickname,
		email:     email,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewRootUser creates the superuser seeded on install.
func NewRootUser(username, password string, hasher PasswordHasher) (*User, error) {
	u, err := NewUser(username, "Administrator", "")
	if err != nil {
		return nil, err
	}
	u.isRoot = true
	if err := u.SetPassword(password, hasher); err != nil {
		return nil, err
	}
	return u, nil
}

func ReconstructUser(id, username, nickname, email, passwordHash string, isRoot bool, status Status, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		nickname:     nickname,
		email:        email,
		passwordHash: passwordHash,
		isRoot:       isRoot,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) SetPassword(password string, hasher PasswordHasher) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.passwordHash = hash
	u.updatedAt = time.Now().UTC()
	return nil
}

func (u *User) UpdateProfile(nickname, email string) error {
	if strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("nickname is required")
	}
	if email != "" && !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address")
	}
	u.nickname = nickname
	u.email = email
	u.updatedAt = time.Now().UTC()
	return nil
}

func (u *User) VerifyPassword(password string, hasher PasswordHasher) error {
	if u.passwordHash == "" {
		return ErrInvalidCredentials
	}
	if u.status != StatusActive {
		return ErrUserDisabled
	}
	if err := hasher.Verify(password, u.passwordHash); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (u *User) ID() string           { return u.id }
func (u *User) SetID(id string)      { u.id = id }
func (u *User) Username() string     { return u.username }
func (u *User) Nickname() string     { return u.nickname }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) IsRoot() bool         { return u.isRoot }
func (u *User) Status() Status       { return u.status }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
