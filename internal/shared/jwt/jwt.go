package jwt

import (
	"errors"
	"os"
	"time"

	jw "github.com/golang-jwt/jwt/v5"
)

var (
	accessTTL  = time.Hour
	refreshTTL = 24 * time.Hour
)

// Configure overrides the token lifetimes, normally from configs at startup.
func Configure(access, refresh time.Duration) {
	if access > 0 {
		accessTTL = access
	}
	if refresh > 0 {
		refreshTTL = refresh
	}
}

func AccessTTL() time.Duration  { return accessTTL }
func RefreshTTL() time.Duration { return refreshTTL }

func secret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("replace-this-with-a-strong-secret")
}

// MakeAccess mints an access token carrying the full principal.
func MakeAccess(userID uint, username string, superuser bool) (string, error) {
	now := time.Now()
	claims := jw.MapClaims{
		"sub":  int64(userID),
		"name": username,
		"su":   superuser,
		"typ":  "access",
		"iat":  now.Unix(),
		"exp":  now.Add(accessTTL).Unix(),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(secret())
}

// MakeRefresh mints a refresh token; it identifies the user only, the
// principal is re-read from the store when it is redeemed.
func MakeRefresh(userID uint) (string, error) {
	now := time.Now()
	claims := jw.MapClaims{
		"sub": int64(userID),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(secret())
}

func ParseAccess(tok string) (userID uint, username string, superuser bool, err error) {
	mc, err := parse(tok, "access")
	if err != nil {
		return 0, "", false, err
	}
	sub, ok := mc["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, "", false, errors.New("missing subject")
	}
	name, _ := mc["name"].(string)
	su, _ := mc["su"].(bool)
	return uint(sub), name, su, nil
}

func ParseRefresh(tok string) (userID uint, err error) {
	mc, err := parse(tok, "refresh")
	if err != nil {
		return 0, err
	}
	sub, ok := mc["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, errors.New("missing subject")
	}
	return uint(sub), nil
}

func parse(tok, typ string) (jw.MapClaims, error) {
	t, err := jw.Parse(tok, func(t *jw.Token) (any, error) { return secret(), nil })
	if err != nil || !t.Valid {
		return nil, errors.New("invalid token")
	}
	mc, ok := t.Claims.(jw.MapClaims)
	if !ok {
		return nil, errors.New("bad claims")
	}
	if got, _ := mc["typ"].(string); got != typ {
		return nil, errors.New("wrong token type")
	}
	return mc, nil
}
