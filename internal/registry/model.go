package registry

import "time"

// Depositor is an account holder registered with the vault. The address
// doubles as the custodial account identifier.
type Depositor struct {
	Address    string
	Handle     string
	SecretHash []byte
	CreatedAt  time.Time
}

// Credentials carries a registration or login attempt.
type Credentials struct {
	Handle     string
	Passphrase string
}
