// Package twofactor wraps TOTP secret generation and code verification for
// the admin two-factor flow.
package twofactor

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Issuer is the name shown next to the account in authenticator apps.
	Issuer = "Telegram Clone Admin"

	// skew tolerates ±2 time steps of clock drift between the server and
	// the authenticator device.
	skew = 2
)

// Setup is a freshly generated shared secret plus the otpauth:// URI the
// dashboard renders as a QR code.
type Setup struct {
	Secret          string
	ProvisioningURI string
}

// Generate creates a new random TOTP secret bound to the admin's email.
func Generate(account string) (*Setup, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      Issuer,
		AccountName: account,
		SecretSize:  32,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}
	return &Setup{Secret: key.Secret(), ProvisioningURI: key.URL()}, nil
}

// Verify checks a 6-digit code against the secret, allowing skew steps of
// drift in either direction.
func Verify(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
