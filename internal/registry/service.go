package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPassphraseLength = 8

var (
	// ErrWeakSecret is returned when the passphrase does not meet the
	// minimum length.
	ErrWeakSecret = errors.New("passphrase must be at least 8 characters")
	// ErrInvalidCredentials is returned for any failed login, without
	// distinguishing unknown handles from wrong passphrases.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service manages depositor onboarding and login.
type Service struct {
	repo Repository
}

// NewService creates a depositor service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a depositor with a fresh vault address and a hashed
// passphrase.
func (s *Service) Register(ctx context.Context, creds Credentials) (Depositor, error) {
	handle := strings.TrimSpace(creds.Handle)
	if handle == "" {
		return Depositor{}, errors.New("handle is required")
	}
	if len(creds.Passphrase) < minPassphraseLength {
		return Depositor{}, ErrWeakSecret
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Passphrase), bcrypt.DefaultCost)
	if err != nil {
		return Depositor{}, err
	}

	depositor := Depositor{
		Address:    uuid.New().String(),
		Handle:     handle,
		SecretHash: hash,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, depositor); err != nil {
		return Depositor{}, err
	}
	return depositor, nil
}

// Authenticate verifies a handle and passphrase pair.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Depositor, error) {
	depositor, err := s.repo.FindByHandle(ctx, strings.TrimSpace(creds.Handle))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Depositor{}, ErrInvalidCredentials
		}
		return Depositor{}, err
	}
	if err := bcrypt.CompareHashAndPassword(depositor.SecretHash, []byte(creds.Passphrase)); err != nil {
		return Depositor{}, ErrInvalidCredentials
	}
	return depositor, nil
}
