package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/healthtrack/records-api/internal/core/domain"
)

const tokenBytes = 16

var errMalformedToken = errors.New("malformed token")

// TokenIssuer mints session tokens and rejects values it could never have issued.
// Whether a well-formed token is still live is decided by the credential store.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) error
}

// randomHex returns 128 bits from crypto/rand, hex encoded.
func randomHex() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

type opaqueIssuer struct{}

// NewOpaqueIssuer returns an issuer producing 32-char hex tokens.
func NewOpaqueIssuer() TokenIssuer {
	return opaqueIssuer{}
}

func (opaqueIssuer) Issue(*domain.User) (string, error) {
	return randomHex()
}

func (opaqueIssuer) Verify(token string) error {
	if len(token) != 2*tokenBytes {
		return errMalformedToken
	}
	if _, err := hex.DecodeString(token); err != nil {
		return errMalformedToken
	}
	return nil
}

type jwtIssuer struct {
	key []byte
	now func() time.Time
}

// NewJWTIssuer returns an issuer producing HS256 tokens signed with key.
// The tokens carry no expiry; a later login supersedes them.
func NewJWTIssuer(key []byte) TokenIssuer {
	return &jwtIssuer{key: key, now: time.Now}
}

func (i *jwtIssuer) Issue(user *domain.User) (string, error) {
	jti, err := randomHex()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"jti":  jti,
		"iat":  i.now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

func (i *jwtIssuer) Verify(token string) error {
	tkn, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.key, nil
	})
	if err != nil || !tkn.Valid {
		return errMalformedToken
	}
	return nil
}
