package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Codec signs and verifies access tokens using symmetric HMAC-SHA256.
type Codec struct {
	secret  []byte
	issuer  string
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec creates a Codec with the given shared secret and issuer.
func NewCodec(secret, issuer string, options ...CodecOption) *Codec {
	c := &Codec{
		secret:  []byte(secret),
		issuer:  issuer,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Sign stamps the registered claims and returns the signed compact token.
func (c *Codec) Sign(claims AccessClaims, ttl time.Duration) (string, error) {
	now := c.nowFunc()
	claims.Issuer = c.issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.ID = uuid.New().String()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := tok.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signedToken, nil
}

// Verify parses and validates a signed token and returns its claims.
func (c *Codec) Verify(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, c.verificationKey,
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithIssuer(c.issuer),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

func (c *Codec) verificationKey(tok *jwt.Token) (any, error) {
	if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", tok.Header["alg"])
	}
	return c.secret, nil
}
