package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Verifier resolves a bearer credential to a stable user identity. The chat
// core never mints credentials itself; the identity provider is external.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

type JwtVerifier struct {
	secret []byte
	cache  *gocache.Cache
}

func NewJwtVerifier(secret string) *JwtVerifier {
	// Verified tokens are cached so repeated requests with the same bearer
	// credential skip signature checks. Entries expire ahead of the token.
	return &JwtVerifier{
		secret: []byte(secret),
		cache:  gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (v *JwtVerifier) Verify(tokenStr string) (uuid.UUID, error) {
	if cached, found := v.cache.Get(tokenStr); found {
		return cached.(uuid.UUID), nil
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid claims")
	}

	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id claim")
	}

	ttl := gocache.DefaultExpiration
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if until := time.Until(exp.Time); until > 0 && until < 5*time.Minute {
			ttl = until
		}
	}
	v.cache.Set(tokenStr, userId, ttl)

	return userId, nil
}
