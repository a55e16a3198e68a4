package host

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNonceSecretRequired = errors.New("nonce secret is required")

// NonceIssuer 는 HS256 JWT 로 action 단위 nonce 를 발급/검증한다.
type NonceIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewNonceIssuer(secret string, ttl time.Duration) (*NonceIssuer, error) {
	if secret == "" {
		return nil, ErrNonceSecretRequired
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &NonceIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (n *NonceIssuer) CreateNonce(action string) (string, error) {
	if n == nil {
		return "", ErrNonceSecretRequired
	}
	now := n.now()
	claims := jwt.MapClaims{
		"act": action,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(n.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(n.secret)
}

// VerifyNonce reports whether token was issued by n for action and has not
// expired.
func (n *NonceIssuer) VerifyNonce(token, action string) bool {
	if n == nil || token == "" {
		return false
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return n.secret, nil
	}, jwt.WithTimeFunc(n.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	act, _ := claims["act"].(string)
	return act == action
}
