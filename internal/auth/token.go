package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidToken is returned when a token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token's exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
)

var encoding = base64.RawURLEncoding

// Claims is the JWT payload for vault access tokens.
type Claims struct {
	Subject  string `json:"sub"`
	Handle   string `json:"handle,omitempty"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// Sign produces a compact HS256 JWT for the given claims.
func Sign(claims Claims, secret []byte) (string, error) {
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	unsigned := encoding.EncodeToString(header) + "." + encoding.EncodeToString(payload)
	return unsigned + "." + encoding.EncodeToString(sign(unsigned, secret)), nil
}

// Verify checks the signature and expiry of a compact HS256 JWT and
// returns its claims.
func Verify(token string, secret []byte, now time.Time) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}
	signature, err := encoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	unsigned := parts[0] + "." + parts[1]
	if !hmac.Equal(signature, sign(unsigned, secret)) {
		return Claims{}, ErrInvalidToken
	}

	payload, err := encoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.Expires != 0 && now.Unix() > claims.Expires {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}

func sign(unsigned string, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return mac.Sum(nil)
}
