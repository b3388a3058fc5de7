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
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// DefaultPKCELength is the length of generated PKCE code verifiers.
const DefaultPKCELength = 7

// PKCEMethodS256 is the SHA-256 code challenge method (RFC 7636).
const PKCEMethodS256 = "S256"

// PKCEMethodPlain is the plain code challenge method (RFC 7636).
const PKCEMethodPlain = "plain"

// PKCEChallenge holds a PKCE code verifier and the S256 challenge derived from it.
type PKCEChallenge struct {
	CodeVerifier  string
	CodeChallenge string
	Method        string
}

// NewPKCEChallenge creates a S256 challenge for the given code verifier.
// If the verifier is empty, a random one of DefaultPKCELength characters is generated.
func NewPKCEChallenge(codeVerifier string) PKCEChallenge {
	if codeVerifier == "" {
		codeVerifier = GenerateRandomString(DefaultPKCELength)
	}
	return PKCEChallenge{
		CodeVerifier:  codeVerifier,
		CodeChallenge: s256(codeVerifier),
		Method:        PKCEMethodS256,
	}
}

// VerifyPKCE checks the code verifier against the challenge using the given method.
// An empty method means plain, as RFC 7636 section 4.3 prescribes.
func VerifyPKCE(codeVerifier, codeChallenge, method string) bool {
	var expected string
	switch method {
	case PKCEMethodS256:
		expected = s256(codeVerifier)
	case PKCEMethodPlain, "":
		expected = codeVerifier
	default:
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(codeChallenge)) == 1
}

func s256(codeVerifier string) string {
	hash := sha256.Sum256([]byte(codeVerifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
