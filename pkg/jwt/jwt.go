package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims claims propios del token: el sujeto es el UserID emitido por el
// servicio de identidad externo.
type Claims struct {
	jwtlib.RegisteredClaims
}

// Generate emite un token HS256 firmado con el secreto compartido. Pensado para
// pruebas y herramientas; en producción los tokens los emite el servicio de
// identidad.
func Generate(secret, userID, issuer string, expMinutes int) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("firmar token: %w", err)
	}
	return signed, nil
}

// Parse valida firma y expiración y devuelve el UserID (subject) del token.
func Parse(secret, tokenString string) (string, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("token inválido")
	}
	if claims.Subject == "" {
		return "", errors.New("token sin subject")
	}
	return claims.Subject, nil
}
