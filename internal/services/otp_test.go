package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetzy/meetzy-backend/internal/models"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		assert.GreaterOrEqual(t, otp[0], byte('1'), "OTP must not have a leading zero")
		seen[otp] = true
	}
	assert.Greater(t, len(seen), 1, "OTPs should vary")
}

func TestOTPMatches(t *testing.T) {
	now := time.Now().UTC()
	expiry := now.Add(OTPValidity)
	user := &models.User{OTP: "123456", OTPExpiry: &expiry}

	assert.True(t, OTPMatches(user, "123456", now))
	assert.False(t, OTPMatches(user, "654321", now))
	assert.False(t, OTPMatches(user, "123456", expiry.Add(time.Second)), "expired OTP is rejected")

	cleared := &models.User{}
	assert.False(t, OTPMatches(cleared, "123456", now), "verified users have no OTP to match")
}
