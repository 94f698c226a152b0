package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/smallbiznis/storeadmin/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "__session"

var (
	ErrMissingSecret = errors.New("missing_jwt_secret")
	ErrInvalidToken  = errors.New("invalid_token")
)

var Module = fx.Module("identity",
	fx.Provide(
		NewJWTProvider,
		func(p *JWTProvider) Provider { return p },
	),
)

// Identity is the authenticated caller. UserID is opaque.
type Identity struct {
	UserID string
}

// Provider resolves the identity of an inbound request. A request without a
// usable credential has no identity; that is not an error.
type Provider interface {
	Identify(r *http.Request) (Identity, bool)
}

// JWTProvider verifies HS256 session tokens whose subject is the user id.
type JWTProvider struct {
	secret []byte
	issuer string
	log    *zap.Logger
}

func NewJWTProvider(cfg config.Config, log *zap.Logger) (*JWTProvider, error) {
	secret := strings.TrimSpace(cfg.AuthJWTSecret)
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTProvider{
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.AuthJWTIssuer),
		log:    log.Named("identity"),
	}, nil
}

func (p *JWTProvider) Identify(r *http.Request) (Identity, bool) {
	raw := tokenFromRequest(r)
	if raw == "" {
		return Identity{}, false
	}
	id, err := p.Verify(raw)
	if err != nil {
		p.log.Debug("rejected session token", zap.Error(err))
		return Identity{}, false
	}
	return id, true
}

// Verify parses raw and checks signature, expiry and, when configured, issuer.
func (p *JWTProvider) Verify(raw string) (Identity, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if p.issuer != "" && !claims.VerifyIssuer(p.issuer, true) {
		return Identity{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Identity{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return Identity{UserID: subject}, nil
}

// Issue signs a session token for userID valid for ttl.
func (p *JWTProvider) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwt.StandardClaims{
		Subject:   userID,
		Issuer:    p.issuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func tokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

type ctxKey struct{}

// WithIdentity stores id on ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// UserID returns the authenticated user id or "".
func UserID(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.UserID
}
