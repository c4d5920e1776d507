package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/matrix/internal/domain/entities"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testUser() *entities.User {
	return &entities.User{ID: uuid.New(), Email: "alice@example.com"}
}

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := NewJWTCodec(testSecret, 7*24*time.Hour, "matrix-test")
	user := testUser()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := codec.Issue(user, now)
	require.NoError(t, err)

	claims, err := codec.Verify(token, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(7*24*time.Hour)))
	assert.True(t, claims.IssuedAt.Equal(now))
}

func TestJWTCodec_PayloadUsesIDAndEmail(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour, "")
	user := testUser()

	token, err := codec.Issue(user, time.Now())
	require.NoError(t, err)

	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), parsed["id"])
	assert.Equal(t, user.Email, parsed["email"])
	assert.Contains(t, parsed, "exp")
}

func TestJWTCodec_ExpiryFollowsInjectedClock(t *testing.T) {
	codec := NewJWTCodec(testSecret, 7*24*time.Hour, "")
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	token, err := codec.Issue(testUser(), issued)
	require.NoError(t, err)

	_, err = codec.Verify(token, issued.Add(6*24*time.Hour+23*time.Hour))
	assert.NoError(t, err)

	_, err = codec.Verify(token, issued.Add(7*24*time.Hour+time.Hour))
	assert.Error(t, err)
}

func TestJWTCodec_RejectsTamperedSignature(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour, "")
	now := time.Now()

	token, err := codec.Issue(testUser(), now)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered, now)
	assert.Error(t, err)
}

func TestJWTCodec_RejectsWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := NewJWTCodec([]byte("another-secret-another-secret-xx"), time.Hour, "").Issue(testUser(), now)
	require.NoError(t, err)

	_, err = NewJWTCodec(testSecret, time.Hour, "").Verify(token, now)
	assert.Error(t, err)
}

func TestJWTCodec_RejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    uuid.NewString(),
		"email": "mallory@example.com",
		"exp":   now.Add(time.Hour).Unix(),
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewJWTCodec(testSecret, time.Hour, "").Verify(none, now)
	assert.Error(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = NewJWTCodec(testSecret, time.Hour, "").Verify(hs512, now)
	assert.Error(t, err)
}

func TestJWTCodec_RequiresExpiryAndSubject(t *testing.T) {
	now := time.Now()
	codec := NewJWTCodec(testSecret, time.Hour, "")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    uuid.NewString(),
		"email": "a@example.com",
	}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = codec.Verify(noExp, now)
	assert.Error(t, err)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@example.com",
		"exp":   now.Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = codec.Verify(noID, now)
	assert.Error(t, err)
}
