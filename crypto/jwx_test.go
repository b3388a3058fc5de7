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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/openid4vc/crypto/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignJWT(t *testing.T) {
	key := test.GenerateJWK()

	t.Run("ok", func(t *testing.T) {
		token, err := SignJWT(key, jwa.ES256, map[string]interface{}{"iss": "issuer", "nested": map[string]interface{}{"a": "b"}}, map[string]interface{}{"kid": "did:example:123#key-1"})

		require.NoError(t, err)
		parsed, err := ParseUnverified(token)
		require.NoError(t, err)
		assert.Equal(t, "did:example:123#key-1", parsed.KeyID())
		assert.Equal(t, "ES256", parsed.Algorithm())
		assert.Equal(t, "JWT", parsed.Type())
		assert.Equal(t, "issuer", parsed.StringClaim("iss"))
		assert.Equal(t, map[string]interface{}{"a": "b"}, parsed.Claims["nested"])
	})
	t.Run("typ can be overridden", func(t *testing.T) {
		token, err := SignJWT(key, jwa.ES256, map[string]interface{}{}, map[string]interface{}{"typ": "openid4vci-proof+jwt"})

		require.NoError(t, err)
		parsed, _ := ParseUnverified(token)
		assert.Equal(t, "openid4vci-proof+jwt", parsed.Type())
	})
	t.Run("algorithm does not match key", func(t *testing.T) {
		_, err := SignJWT(key, jwa.RS256, map[string]interface{}{}, nil)

		assert.Error(t, err)
	})
}

func TestParseUnverified(t *testing.T) {
	t.Run("not a JWT", func(t *testing.T) {
		_, err := ParseUnverified("not a jwt")

		assert.ErrorIs(t, err, ErrInvalidJWT)
	})
	t.Run("payload is not a JSON object", func(t *testing.T) {
		_, err := ParseUnverified("eyJhbGciOiJub25lIn0.WzFd.")

		assert.ErrorIs(t, err, ErrInvalidJWT)
	})
	t.Run("numeric claims", func(t *testing.T) {
		token, err := SignJWT(test.GenerateJWK(), jwa.ES256, map[string]interface{}{"exp": 1700000000}, nil)
		require.NoError(t, err)

		parsed, err := ParseUnverified(token)

		require.NoError(t, err)
		exp, ok := parsed.NumericClaim("exp")
		assert.True(t, ok)
		assert.Equal(t, int64(1700000000), exp)
		_, ok = parsed.NumericClaim("iat")
		assert.False(t, ok)
	})
}

func TestVerifyJWT(t *testing.T) {
	key := test.GenerateJWK()
	publicKey := test.PublicJWK(key)
	sign := func(claims map[string]interface{}) string {
		token, err := SignJWT(key, jwa.ES256, claims, nil)
		require.NoError(t, err)
		return token
	}
	exp := time.Now().Add(time.Minute).Unix()

	t.Run("ok", func(t *testing.T) {
		token, err := VerifyJWT(sign(map[string]interface{}{"exp": exp, "aud": "https://rp.example.com"}), publicKey, "https://rp.example.com")

		require.NoError(t, err)
		assert.Equal(t, "https://rp.example.com", token.StringClaim("aud"))
	})
	t.Run("ok - audience in array", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"exp": exp, "aud": []string{"other", "https://rp.example.com"}}), publicKey, "https://rp.example.com")

		assert.NoError(t, err)
	})
	t.Run("ok - audience not checked", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"exp": exp}), publicKey, "")

		assert.NoError(t, err)
	})
	t.Run("verifies with private key", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"exp": exp}), key, "")

		assert.NoError(t, err)
	})
	t.Run("missing exp", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"aud": "a"}), publicKey, "a")

		assert.ErrorIs(t, err, ErrExpired)
	})
	t.Run("expired", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"exp": time.Now().Add(-time.Hour).Unix()}), publicKey, "")

		assert.Error(t, err)
	})
	t.Run("expired within clock skew", func(t *testing.T) {
		original := nowFunc
		defer func() { nowFunc = original }()
		now := time.Now()
		nowFunc = func() time.Time { return now }
		token := sign(map[string]interface{}{"exp": now.Add(-2 * time.Second).Unix()})

		_, err := VerifyJWT(token, publicKey, "")

		assert.ErrorIs(t, err, ErrExpired)
	})
	t.Run("invalid audience", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"exp": exp, "aud": "other"}), publicKey, "https://rp.example.com")

		assert.ErrorIs(t, err, ErrInvalidAudience)
	})
	t.Run("missing audience", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"exp": exp}), publicKey, "https://rp.example.com")

		assert.ErrorIs(t, err, ErrInvalidAudience)
	})
	t.Run("wrong key", func(t *testing.T) {
		_, err := VerifyJWT(sign(map[string]interface{}{"exp": exp}), test.PublicJWK(test.GenerateJWK()), "")

		assert.Error(t, err)
	})
	t.Run("alg none", func(t *testing.T) {
		_, err := VerifyJWT("eyJhbGciOiJub25lIn0.e30.", publicKey, "")

		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestVerifySignature(t *testing.T) {
	key := test.GenerateJWK()
	token, err := SignJWT(key, jwa.ES256, map[string]interface{}{"sub": "a"}, nil)
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, VerifySignature(token, test.PublicJWK(key)))
	})
	t.Run("tampered payload", func(t *testing.T) {
		other, _ := SignJWT(key, jwa.ES256, map[string]interface{}{"sub": "b"}, nil)
		tampered := strings.Split(token, ".")[0] + "." + strings.Split(other, ".")[1] + "." + strings.Split(token, ".")[2]

		assert.Error(t, VerifySignature(tampered, test.PublicJWK(key)))
	})
	t.Run("alg none", func(t *testing.T) {
		assert.ErrorIs(t, VerifySignature("eyJhbGciOiJub25lIn0.e30.", test.PublicJWK(key)), ErrUnsupportedAlgorithm)
	})
}

func TestJWKFromMap(t *testing.T) {
	key := test.PublicJWK(test.GenerateJWK())
	data, _ := json.Marshal(key)
	asMap := map[string]interface{}{}
	_ = json.Unmarshal(data, &asMap)

	result, err := JWKFromMap(asMap)

	require.NoError(t, err)
	assert.True(t, jwk.Equal(key, result))
}

func TestSelectAlgorithm(t *testing.T) {
	key := test.GenerateJWK()

	t.Run("first matching algorithm", func(t *testing.T) {
		alg, err := SelectAlgorithm(key, []string{"EdDSA", "ES256", "ES384"})

		require.NoError(t, err)
		assert.Equal(t, jwa.ES256, alg)
	})
	t.Run("no match", func(t *testing.T) {
		_, err := SelectAlgorithm(key, []string{"EdDSA"})

		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
	t.Run("curve determines the algorithm", func(t *testing.T) {
		privateKey, _ := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		p384Key, err := jwk.FromRaw(privateKey)
		require.NoError(t, err)

		alg, err := SelectAlgorithm(p384Key, []string{"ES256K", "ES256", "ES384"})

		require.NoError(t, err)
		assert.Equal(t, jwa.ES384, alg)
	})
	t.Run("ES256K does not match a P-256 key", func(t *testing.T) {
		_, err := SelectAlgorithm(key, []string{"ES256K"})

		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestAddSupportedAlgorithm(t *testing.T) {
	original := supportedAlgorithms
	t.Cleanup(func() {
		supportedAlgorithms = original
	})
	supportedAlgorithms = append([]jwa.SignatureAlgorithm{}, original...)

	AddSupportedAlgorithm(jwa.HS256)
	AddSupportedAlgorithm(jwa.HS256)

	assert.True(t, IsSupportedAlgorithm("HS256"))
	assert.Len(t, supportedAlgorithms, len(original)+1)
}

func TestIsSupportedAlgorithm(t *testing.T) {
	assert.True(t, IsSupportedAlgorithm("ES256"))
	assert.True(t, IsSupportedAlgorithm("EdDSA"))
	assert.False(t, IsSupportedAlgorithm("none"))
	assert.False(t, IsSupportedAlgorithm("HS256"))
}
