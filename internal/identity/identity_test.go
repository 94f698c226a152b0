package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/smallbiznis/storeadmin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProvider(t *testing.T, issuer string) *JWTProvider {
	t.Helper()
	p, err := NewJWTProvider(config.Config{AuthJWTSecret: "test-secret", AuthJWTIssuer: issuer}, zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestNewJWTProviderRequiresSecret(t *testing.T) {
	_, err := NewJWTProvider(config.Config{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIdentifyFromBearerAndCookie(t *testing.T) {
	p := newProvider(t, "")
	token, err := p.Issue("user_1", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	id, ok := p.Identify(r)
	require.True(t, ok)
	assert.Equal(t, "user_1", id.UserID)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	id, ok = p.Identify(r)
	require.True(t, ok)
	assert.Equal(t, "user_1", id.UserID)
}

func TestIdentifyRejectsBadTokens(t *testing.T) {
	p := newProvider(t, "")
	other := newProvider(t, "")
	other.secret = []byte("another-secret")

	expired, err := p.Issue("user_1", -time.Minute)
	require.NoError(t, err)
	forged, err := other.Issue("user_1", time.Hour)
	require.NoError(t, err)
	noSubject, err := p.Issue("", time.Hour)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.StandardClaims{Subject: "user_1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"absent":     "",
		"garbage":    "Bearer not-a-token",
		"expired":    "Bearer " + expired,
		"forged":     "Bearer " + forged,
		"no subject": "Bearer " + noSubject,
		"alg none":   "Bearer " + none,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			_, ok := p.Identify(r)
			assert.False(t, ok)
		})
	}
}

func TestVerifyChecksIssuer(t *testing.T) {
	p := newProvider(t, "https://auth.example.com")
	token, err := p.Issue("user_1", time.Hour)
	require.NoError(t, err)

	_, err = p.Verify(token)
	require.NoError(t, err)

	untrusted := newProvider(t, "https://other.example.com")
	_, err = untrusted.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "", UserID(context.Background()))

	ctx := WithIdentity(context.Background(), Identity{UserID: "user_2"})
	assert.Equal(t, "user_2", UserID(ctx))

	_, ok = FromContext(WithIdentity(context.Background(), Identity{}))
	assert.False(t, ok)
}
