/*
 * Copyright (C) 2023 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ClockSkew is the tolerance applied to time-based claims (nbf, exp, iat) when verifying a JWT.
const ClockSkew = 5 * time.Second

// ErrInvalidJWT is returned when a token can't be decoded as compact JWS with a JSON payload.
var ErrInvalidJWT = errors.New("Invalid JWT for decoding")

// ErrExpired is returned when a JWT is expired or does not contain an exp claim.
var ErrExpired = errors.New("JWT is expired or does not have exp parameter")

// ErrInvalidAudience is returned when the aud claim of a JWT does not contain the expected audience.
var ErrInvalidAudience = errors.New("JWT audience is invalid or is not defined")

// ErrUnsupportedAlgorithm is returned when a JWT is signed with an algorithm that can't be verified (e.g. none).
var ErrUnsupportedAlgorithm = errors.New("unsupported JWA")

// supportedAlgorithms lists the signature algorithms that are accepted for verification.
var supportedAlgorithms = []jwa.SignatureAlgorithm{
	jwa.ES256, jwa.ES384, jwa.ES512,
	jwa.EdDSA,
	jwa.PS256, jwa.PS384, jwa.PS512,
	jwa.RS256, jwa.RS384, jwa.RS512,
}

// curveAlgorithms maps the supported elliptic curves to the signature algorithm that uses them.
var curveAlgorithms = map[jwa.EllipticCurveAlgorithm]jwa.SignatureAlgorithm{
	jwa.P256: jwa.ES256,
	jwa.P384: jwa.ES384,
	jwa.P521: jwa.ES512,
}

// AddSupportedAlgorithm adds a signature algorithm to the list of algorithms accepted for verification.
func AddSupportedAlgorithm(alg jwa.SignatureAlgorithm) {
	for _, curr := range supportedAlgorithms {
		if curr == alg {
			return
		}
	}
	supportedAlgorithms = append(supportedAlgorithms, alg)
}

// nowFunc is used for time-based claim validation, so tests can move the clock.
var nowFunc = time.Now

// IsSupportedAlgorithm returns true if the given JWA can be used to verify signatures.
func IsSupportedAlgorithm(alg string) bool {
	for _, curr := range supportedAlgorithms {
		if curr.String() == alg {
			return true
		}
	}
	return false
}

// Token is a decoded (but not verified) compact JWT.
type Token struct {
	// Raw contains the compact serialization the token was parsed from.
	Raw    string
	Header map[string]interface{}
	Claims map[string]interface{}
}

// ParseUnverified decodes the header and claims of a compact JWT, without verifying its signature.
func ParseUnverified(raw string) (*Token, error) {
	message, err := jws.Parse([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJWT, err)
	}
	if len(message.Signatures()) != 1 {
		return nil, fmt.Errorf("%w: incorrect amount of signatures in JWT", ErrInvalidJWT)
	}
	// header values are kept as plain JSON types, jws.Headers.AsMap returns typed values (e.g. jwa.SignatureAlgorithm)
	header := make(map[string]interface{})
	headerBytes, err := base64.RawURLEncoding.DecodeString(strings.SplitN(raw, ".", 2)[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJWT, err)
	}
	if err = json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJWT, err)
	}
	claims := make(map[string]interface{})
	if err = json.Unmarshal(message.Payload(), &claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidJWT)
	}
	return &Token{Raw: raw, Header: header, Claims: claims}, nil
}

// KeyID returns the kid header, or an empty string if absent.
func (t Token) KeyID() string {
	return stringValue(t.Header, jws.KeyIDKey)
}

// Algorithm returns the alg header.
func (t Token) Algorithm() string {
	return stringValue(t.Header, jws.AlgorithmKey)
}

// Type returns the typ header.
func (t Token) Type() string {
	return stringValue(t.Header, jws.TypeKey)
}

// StringClaim returns the claim with the given name if it's a string, or an empty string otherwise.
func (t Token) StringClaim(name string) string {
	return stringValue(t.Claims, name)
}

// NumericClaim returns the claim with the given name as integer (e.g. exp, iat), if present and numeric.
func (t Token) NumericClaim(name string) (int64, bool) {
	switch value := t.Claims[name].(type) {
	case float64:
		return int64(value), true
	case json.Number:
		result, err := value.Int64()
		return result, err == nil
	}
	return 0, false
}

// HasAudience returns true if the aud claim equals the given audience, or (when it's an array) contains it.
func (t Token) HasAudience(audience string) bool {
	switch aud := t.Claims[jwt.AudienceKey].(type) {
	case string:
		return aud == audience
	case []interface{}:
		for _, curr := range aud {
			if curr == audience {
				return true
			}
		}
	}
	return false
}

// VerifySignature verifies the signature of the given compact JWS using the given key.
// The algorithm is taken from the JWS header; "none" or unknown algorithms are rejected.
func VerifySignature(raw string, key jwk.Key) error {
	token, err := ParseUnverified(raw)
	if err != nil {
		return err
	}
	if !IsSupportedAlgorithm(token.Algorithm()) {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, token.Algorithm())
	}
	publicKey, err := key.PublicKey()
	if err != nil {
		return err
	}
	_, err = jws.Verify([]byte(raw), jws.WithKey(jwa.SignatureAlgorithm(token.Algorithm()), publicKey))
	return err
}

// VerifyJWT verifies the signature and time-based claims of a JWT (with ClockSkew tolerance).
// The token must contain an exp claim. If audience is not empty, the aud claim must match it.
func VerifyJWT(raw string, key jwk.Key, audience string) (*Token, error) {
	token, err := ParseUnverified(raw)
	if err != nil {
		return nil, err
	}
	if !IsSupportedAlgorithm(token.Algorithm()) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, token.Algorithm())
	}
	publicKey, err := key.PublicKey()
	if err != nil {
		return nil, err
	}
	_, err = jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.SignatureAlgorithm(token.Algorithm()), publicKey),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(ClockSkew),
		jwt.WithClock(jwt.ClockFunc(nowFunc)))
	if err != nil {
		return nil, err
	}
	exp, ok := token.NumericClaim(jwt.ExpirationKey)
	if !ok || exp < nowFunc().Unix() {
		return nil, ErrExpired
	}
	if audience != "" && !token.HasAudience(audience) {
		return nil, ErrInvalidAudience
	}
	return token, nil
}

// SignJWT signs the given claims with the given private key, returning a compact JWT.
// The headers param can be used to add additional headers; typ defaults to JWT.
func SignJWT(key jwk.Key, alg jwa.SignatureAlgorithm, claims map[string]interface{}, headers map[string]interface{}) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	hdrs := jws.NewHeaders()
	if err = hdrs.Set(jws.TypeKey, "JWT"); err != nil {
		return "", err
	}
	for k, v := range headers {
		if err = hdrs.Set(k, v); err != nil {
			return "", fmt.Errorf("invalid header %s: %w", k, err)
		}
	}
	sig, err := jws.Sign(payload, jws.WithKey(alg, key, jws.WithProtectedHeaders(hdrs)))
	if err != nil {
		return "", err
	}
	return string(sig), nil
}

// JWKFromMap converts a JWK in map form (e.g. publicKeyJwk of a verification method) to a jwk.Key.
func JWKFromMap(value map[string]interface{}) (jwk.Key, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return jwk.ParseKey(data)
}

// SelectAlgorithm returns the first algorithm of the preferred list that is supported by the given key.
func SelectAlgorithm(key jwk.Key, preferred []string) (jwa.SignatureAlgorithm, error) {
	for _, alg := range preferred {
		if keyAlgorithmMatches(key, jwa.SignatureAlgorithm(alg)) {
			return jwa.SignatureAlgorithm(alg), nil
		}
	}
	return "", fmt.Errorf("%w: key can't sign with any of %s", ErrUnsupportedAlgorithm, strings.Join(preferred, ", "))
}

func keyAlgorithmMatches(key jwk.Key, alg jwa.SignatureAlgorithm) bool {
	switch key.KeyType() {
	case jwa.EC:
		crv, _ := key.Get(jwk.ECDSACrvKey)
		if curve, ok := crv.(jwa.EllipticCurveAlgorithm); ok {
			expected, supported := curveAlgorithms[curve]
			return supported && alg == expected
		}
	case jwa.OKP:
		return alg == jwa.EdDSA
	case jwa.RSA:
		switch alg {
		case jwa.PS256, jwa.PS384, jwa.PS512, jwa.RS256, jwa.RS384, jwa.RS512:
			return true
		}
	}
	return false
}

func stringValue(values map[string]interface{}, key string) string {
	result, _ := values[key].(string)
	return result
}
