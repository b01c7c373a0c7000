package services

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/meetzy/meetzy-backend/internal/models"
)

// OTPValidity is how long a generated OTP can be redeemed.
const OTPValidity = 10 * time.Minute

// GenerateOTP returns a 6-digit one-time password.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	digits := n.Int64() + 100000
	return big.NewInt(digits).String(), nil
}

// OTPMatches checks a submitted OTP against the user's stored one,
// including the expiry window.
func OTPMatches(u *models.User, otp string, now time.Time) bool {
	if u.OTP == "" || u.OTPExpiry == nil {
		return false
	}
	return u.OTP == otp && now.Before(*u.OTPExpiry)
}
