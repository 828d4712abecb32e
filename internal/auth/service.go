package auth

import (
	"time"

	"github.com/dagron78/custodyvault/internal/config"
	"github.com/dagron78/custodyvault/internal/registry"
)

// Service issues and refreshes vault access tokens.
type Service struct {
	cfg config.Config
}

// NewService creates an auth service.
func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// TokenPair carries an access token plus the refresh token used to renew
// it without re-entering credentials.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login issues a token pair for an authenticated depositor.
func (s *Service) Login(depositor registry.Depositor) (TokenPair, error) {
	now := time.Now()
	access, err := Sign(Claims{
		Subject:  depositor.Address,
		Handle:   depositor.Handle,
		IssuedAt: now.Unix(),
		Expires:  now.Add(s.cfg.AccessTokenTTL).Unix(),
	}, []byte(s.cfg.AuthSecret))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := Sign(Claims{
		Subject:  depositor.Address,
		IssuedAt: now.Unix(),
		Expires:  now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

// Refresh mints a new access token from a valid refresh token.
func (s *Service) Refresh(refreshToken string) (string, int64, error) {
	claims, err := Verify(refreshToken, []byte(s.cfg.RefreshSecret), time.Now())
	if err != nil {
		return "", 0, err
	}
	now := time.Now()
	access, err := Sign(Claims{
		Subject:  claims.Subject,
		IssuedAt: now.Unix(),
		Expires:  now.Add(s.cfg.AccessTokenTTL).Unix(),
	}, []byte(s.cfg.AuthSecret))
	if err != nil {
		return "", 0, err
	}
	return access, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}
