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

package test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// GenerateECKey generates a P-256 EC key
func GenerateECKey() *ecdsa.PrivateKey {
	key, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	return key
}

// GenerateJWK generates a P-256 private key as JWK.
func GenerateJWK() jwk.Key {
	key, err := jwk.FromRaw(GenerateECKey())
	if err != nil {
		panic(err)
	}
	return key
}

// PublicJWK returns the public key of the given JWK.
func PublicJWK(key jwk.Key) jwk.Key {
	result, err := key.PublicKey()
	if err != nil {
		panic(err)
	}
	return result
}
