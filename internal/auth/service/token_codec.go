package service

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/allisson/journal/internal/auth/domain"
	apperrors "github.com/allisson/journal/internal/errors"
)

// accessTokenClaims is the JWT claims layout for access tokens.
type accessTokenClaims struct {
	UserID       int64               `json:"uid"`
	Username     string              `json:"name"`
	Role         string              `json:"role"`
	Capabilities []domain.Capability `json:"caps,omitempty"`
	SessionID    string              `json:"sid,omitempty"`
	Generation   int64               `json:"gen"`
	jwt.RegisteredClaims
}

// tokenCodec implements TokenCodec with Ed25519-signed JWTs.
type tokenCodec struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	issuer     string
	tokenTTL   time.Duration
}

// NewTokenCodec creates a TokenCodec that signs with the given Ed25519 key.
func NewTokenCodec(privateKey ed25519.PrivateKey, issuer string, tokenTTL time.Duration) (TokenCodec, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, apperrors.New("invalid ed25519 private key size")
	}

	return &tokenCodec{
		privateKey: privateKey,
		publicKey:  privateKey.Public().(ed25519.PublicKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}, nil
}

// Issue creates a signed access token for the subject.
func (t *tokenCodec) Issue(subject domain.TokenSubject) (*domain.AccessToken, error) {
	now := time.Now()
	expiresAt := now.Add(t.tokenTTL)

	claims := accessTokenClaims{
		UserID:       subject.UserID,
		Username:     subject.Username,
		Role:         subject.Role.String(),
		Capabilities: subject.Capabilities,
		SessionID:    subject.SessionID,
		Generation:   subject.Generation,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   fmt.Sprintf("%d", subject.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(t.privateKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign access token")
	}

	return &domain.AccessToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature and validity window and extracts the principal.
func (t *tokenCodec) Verify(tokenString string) (*domain.Principal, error) {
	claims := &accessTokenClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.publicKey, nil
		},
		jwt.WithIssuer(t.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !token.Valid {
		return nil, domain.ErrTokenMalformed
	}

	return principalFromClaims(claims)
}

// principalFromClaims validates required claims and builds the principal with
// its resolved capability set.
func principalFromClaims(claims *accessTokenClaims) (*domain.Principal, error) {
	if claims.UserID <= 0 || claims.Username == "" {
		return nil, domain.ErrIncompleteClaims
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domain.ErrIncompleteClaims
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrIncompleteClaims
	}

	return &domain.Principal{
		UserID:       claims.UserID,
		Username:     claims.Username,
		Role:         role,
		Capabilities: domain.ResolveCapabilities(role, claims.Capabilities),
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
		SessionID:    claims.SessionID,
		Generation:   claims.Generation,
	}, nil
}

// jsonWebKey is the JWKS entry for the Ed25519 verification key.
type jsonWebKey struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
}

// JWKS returns the JSON Web Key Set document for the verification key.
func (t *tokenCodec) JWKS() ([]byte, error) {
	x := base64.RawURLEncoding.EncodeToString(t.publicKey)

	kid, err := keyThumbprint(x)
	if err != nil {
		return nil, err
	}

	doc := struct {
		Keys []jsonWebKey `json:"keys"`
	}{
		Keys: []jsonWebKey{
			{
				Kty: "OKP",
				Crv: "Ed25519",
				X:   x,
				Kid: kid,
				Use: "sig",
				Alg: "EdDSA",
			},
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal jwks")
	}
	return data, nil
}

// keyThumbprint computes the RFC 7638 thumbprint of the key. The canonical
// form uses the required members in lexicographic order.
func keyThumbprint(x string) (string, error) {
	canonical, err := json.Marshal(struct {
		Crv string `json:"crv"`
		Kty string `json:"kty"`
		X   string `json:"x"`
	}{
		Crv: "Ed25519",
		Kty: "OKP",
		X:   x,
	})
	if err != nil {
		return "", apperrors.Wrap(err, "failed to compute key thumbprint")
	}

	sum := sha256.Sum256(canonical)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}
