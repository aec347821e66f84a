package utils // package utils provides helpers for token issuing and verification

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// tokenTTL is the lifetime of every issued credential.  There is no refresh
// or revocation mechanism: a token stays valid until it expires and "renew"
// simply issues a fresh one for an already-authenticated id.
const tokenTTL = 24 * time.Hour

// ErrSinClave is returned by GenerarJWT when no signing key is configured.
// Issuing without a key is a fatal misconfiguration; verification with a
// missing key fails closed instead.
var ErrSinClave = errors.New("clave JWT no configurada")

// GenerarJWT builds and signs an HS256 token whose payload carries the user
// id under the "id" claim, expiring 24 hours from now.
func GenerarJWT(clave string, id int) (string, error) {
	if clave == "" {
		return "", ErrSinClave
	}
	ahora := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":  id,
		"exp": ahora.Add(tokenTTL).Unix(),
		"iat": ahora.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(clave))
}

// ComprobarJWT verifies a bearer token and extracts the user id it encodes.
// Any malformed, expired, unsigned or wrongly-keyed input yields (false, 0);
// verification never propagates an error past this boundary.
func ComprobarJWT(clave, token string) (bool, int) {
	if clave == "" || token == "" {
		return false, 0
	}
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(clave), nil
	})
	if err != nil || !tok.Valid {
		return false, 0
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return false, 0
	}
	// Numeric JSON claims decode as float64.
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return false, 0
	}
	return true, int(id)
}
