package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"edesign/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPIsSixDigits(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		otp := generateOTP()
		require.Len(t, otp, 6)

		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)

		seen[otp] = true
	}
	// 200 draws from a 900000-code space should not collapse to one value.
	assert.Greater(t, len(seen), 1)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", Register)

	// Binding fails before any database access.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewReader([]byte(`{"name":"Budi","email":"budi@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")
}

func TestCheckOTPAcceptsPendingCode(t *testing.T) {
	now := time.Now()
	user := models.User{OTP: "123456", OTPExpiry: now.Add(otpTTL)}

	status, msg := checkOTP(user, "123456", now)

	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, msg)
}

func TestCheckOTPRejectsExpiredCodeEvenWhenCorrect(t *testing.T) {
	now := time.Now()
	user := models.User{OTP: "123456", OTPExpiry: now.Add(otpTTL)}

	// One second past the 10-minute window, code still correct.
	status, msg := checkOTP(user, "123456", user.OTPExpiry.Add(time.Second))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "OTP has expired", msg)
}

func TestCheckOTPRejectsWrongCode(t *testing.T) {
	now := time.Now()
	user := models.User{OTP: "123456", OTPExpiry: now.Add(otpTTL)}

	status, msg := checkOTP(user, "654321", now)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid OTP", msg)
}

func TestCheckOTPRejectsWhenNonePending(t *testing.T) {
	status, msg := checkOTP(models.User{}, "123456", time.Now())

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "OTP not found or expired", msg)
}

func TestLogoutRejectsTokenWithoutExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/logout", Logout)

	// Validly signed, but carries no exp claim.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "abc",
		"role":   "admin",
	})
	tokenString, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestVerifyOTPRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/verify-otp", VerifyOTP)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp",
		bytes.NewReader([]byte(`{"email":"budi@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
