package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/ports"
)

func TestResolveIdentity(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour, "")
	user := testUser()
	now := time.Now()

	token, err := codec.Issue(user, now)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		ok     bool
	}{
		{name: "only cookie", header: "token=" + token, ok: true},
		{name: "among others", header: "theme=dark; token=" + token + "; lang=en", ok: true},
		{name: "no spaces", header: "a=1;token=" + token, ok: true},
		{name: "first token wins", header: "token=" + token + "; token=garbage", ok: true},
		{name: "first token invalid", header: "token=garbage; token=" + token},
		{name: "empty header", header: ""},
		{name: "empty value", header: "token="},
		{name: "similar name", header: "xtoken=" + token},
		{name: "prefix name", header: "token_old=" + token},
		{name: "malformed", header: "token=abc.def.ghi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := ResolveIdentity(tc.header, codec, now)
			if !tc.ok {
				assert.Nil(t, claims)
				assert.Equal(t, entities.KindUnauthorized, entities.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, user.Email, claims.Email)
		})
	}
}

func TestResolveIdentity_IsDeterministic(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour, "")
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := codec.Issue(testUser(), issued)
	require.NoError(t, err)

	header := "token=" + token
	for i := 0; i < 3; i++ {
		_, err := ResolveIdentity(header, codec, issued.Add(30*time.Minute))
		assert.NoError(t, err)
		_, err = ResolveIdentity(header, codec, issued.Add(2*time.Hour))
		assert.ErrorIs(t, err, entities.ErrUnauthorized)
	}
}

func TestAuthorizeTaskAccess(t *testing.T) {
	owner := uuid.New()
	task := &entities.Task{ID: 1, UserID: owner}

	assert.NoError(t, AuthorizeTaskAccess(&ports.Claims{UserID: owner}, task))
	assert.ErrorIs(t, AuthorizeTaskAccess(&ports.Claims{UserID: uuid.New()}, task), entities.ErrForbidden)
	assert.ErrorIs(t, AuthorizeTaskAccess(nil, task), entities.ErrForbidden)
}
