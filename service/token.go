package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pokeelite_backend/model"
)

type sessionClaims struct {
	AccountID         int64  `json:"uid"`
	AccountName       string `json:"name"`
	CredentialVersion int    `json:"ver"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 session tokens.
type TokenService struct {
	key    []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenService(signingKey string, expiry time.Duration, issuer string) *TokenService {
	return &TokenService{
		key:    []byte(signingKey),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

func (t *TokenService) Issue(accountID int64, accountName string, credentialVersion int) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.expiry)

	claims := &sessionClaims{
		AccountID:         accountID,
		AccountName:       accountName,
		CredentialVersion: credentialVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error signing token: %w", err)
	}

	tokensIssued.Inc()
	return signed, expiresAt, nil
}

// Verify checks signature, expiry and issuer. Every failure is
// model.ErrUnauthorized; the cause stays in the wrapped chain for logging.
func (t *TokenService) Verify(token string) (*model.Identity, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.AccountID <= 0 || claims.AccountName == "" {
		return nil, fmt.Errorf("%w: %w", model.ErrUnauthorized, errors.New("token without identity"))
	}

	return &model.Identity{
		AccountID:         claims.AccountID,
		AccountName:       claims.AccountName,
		CredentialVersion: claims.CredentialVersion,
	}, nil
}
