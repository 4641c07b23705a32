package util

import (
	"net/http/httptest"
	"testing"
	"time"

	"certlab_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func testUser() *model.User {
	u := &model.User{
		TenantID: "tenant-a",
		Name:     "Ada",
		Email:    "ada@example.com",
		Role:     model.Member,
	}
	u.ID = 42
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "tenant-a", claims.TenantID)
	assert.Equal(t, model.Member, claims.Role)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestGetUserFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetUserFromContext(c), "empty context should yield nil claims")

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user", "not claims")
	assert.Nil(t, GetUserFromContext(c), "wrong type should yield nil claims")

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	want := &Claims{UserID: 7, TenantID: "tenant-b"}
	c.Set("user", want)
	assert.Equal(t, want, GetUserFromContext(c))
}
