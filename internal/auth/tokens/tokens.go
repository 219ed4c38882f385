package tokens

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session token lifetime. Matching the access_token cookie
// lifetime keeps the cookie and its payload expiring together.
const DefaultTTL = 30 * 24 * time.Hour

// SessionClaims is the JWT envelope carrying the user Claim.
type SessionClaims struct {
	Name  string                 `json:"name"`
	Claim map[string]interface{} `json:"claim"`
	jwt.RegisteredClaims
}

// CreateToken creates an ES256 signed JWT for the given user claim using the
// provided EC private key in PEM form. The returned jti identifies the session
// for allowlist tracking.
func CreateToken(privateKeyPEM, issuer string, profile map[string]string, claim map[string]interface{}, ttl time.Duration) (token string, jti string, err error) {
	privateKey, keyErr := jwt.ParseECPrivateKeyFromPEM([]byte(privateKeyPEM))
	if keyErr != nil {
		return "", "", keyErr
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	sessionID, idErr := uuid.NewV4()
	if idErr != nil {
		return "", "", idErr
	}

	method := jwt.GetSigningMethod(jwt.SigningMethodES256.Name)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   profile["login"],
		},
		Name:  profile["name"],
		Claim: claim,
	}

	jwtToken := jwt.NewWithClaims(method, claims)
	jwtToken.Header["kid"] = "nuoidev-auth-key-1"

	signed, signErr := jwtToken.SignedString(privateKey)
	if signErr != nil {
		return "", "", signErr
	}
	return signed, sessionID.String(), nil
}

// ExtractJTI reads the jti claim without verifying the signature. Callers use
// it to locate the allowlist entry of a token that upstream middleware has
// already validated.
func ExtractJTI(tokenString string) (string, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	jti, _ := claims["jti"].(string)
	return jti, nil
}
