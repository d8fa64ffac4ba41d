package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/shop-service/internal/domain"
)

var (
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenMissingSubject = errors.New("token missing subject")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttls   map[domain.TokenKind]time.Duration
	now    func() time.Time
}

// TokenTTLs configures the lifetime of each token kind.
type TokenTTLs struct {
	Access  time.Duration
	Refresh time.Duration
	Reset   time.Duration
}

// NewTokenManager builds a new manager for an HMAC algorithm (HS256, HS384 or HS512).
func NewTokenManager(secret, algorithm string, ttls TokenTTLs) (*TokenManager, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	if ttls.Access <= 0 {
		ttls.Access = 30 * time.Minute
	}
	if ttls.Refresh <= 0 {
		ttls.Refresh = 7 * 24 * time.Hour
	}
	if ttls.Reset <= 0 {
		ttls.Reset = 5 * time.Minute
	}
	return &TokenManager{
		secret: []byte(secret),
		method: method,
		ttls: map[domain.TokenKind]time.Duration{
			domain.TokenKindAccess:  ttls.Access,
			domain.TokenKindRefresh: ttls.Refresh,
			domain.TokenKindReset:   ttls.Reset,
		},
		now: time.Now,
	}, nil
}

// WithClock replaces the clock used for issuing and validating tokens.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *tm
	clone.now = now
	return &clone
}

// Claims describes JWT payload.
type Claims struct {
	Kind domain.TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// Issue signs a token of the given kind for a user id.
func (tm *TokenManager) Issue(userID int64, kind domain.TokenKind) (string, time.Time, error) {
	ttl, ok := tm.ttls[kind]
	if !ok {
		return "", time.Time{}, fmt.Errorf("unknown token kind %q", kind)
	}
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(tm.method, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// IssuePair signs an access and refresh token for a user.
func (tm *TokenManager) IssuePair(userID int64) (domain.TokenPair, error) {
	access, _, err := tm.Issue(userID, domain.TokenKindAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, _, err := tm.Issue(userID, domain.TokenKindRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// Verify validates signature, expiry and kind of tokenStr.
func (tm *TokenManager) Verify(tokenStr string, kind domain.TokenKind) (domain.Token, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{tm.method.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Token{}, ErrTokenExpired
		}
		return domain.Token{}, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Kind != kind {
		return domain.Token{}, ErrTokenMalformed
	}
	if claims.Subject == "" {
		return domain.Token{}, ErrTokenMissingSubject
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Token{}, ErrTokenMalformed
	}

	token := domain.Token{ID: claims.ID, SubjectID: userID, Kind: claims.Kind}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		token.IssuedAt = claims.IssuedAt.Time
	}
	return token, nil
}
