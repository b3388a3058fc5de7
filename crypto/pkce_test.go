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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPKCEChallenge(t *testing.T) {
	t.Run("given verifier", func(t *testing.T) {
		// RFC 7636 appendix B
		challenge := NewPKCEChallenge("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")

		assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge.CodeChallenge)
		assert.Equal(t, PKCEMethodS256, challenge.Method)
	})
	t.Run("generated verifier", func(t *testing.T) {
		challenge := NewPKCEChallenge("")

		assert.Len(t, challenge.CodeVerifier, DefaultPKCELength)
		assert.True(t, VerifyPKCE(challenge.CodeVerifier, challenge.CodeChallenge, challenge.Method))
	})
}

func TestVerifyPKCE(t *testing.T) {
	challenge := NewPKCEChallenge("verifier")

	assert.True(t, VerifyPKCE("verifier", challenge.CodeChallenge, PKCEMethodS256))
	assert.False(t, VerifyPKCE("other", challenge.CodeChallenge, PKCEMethodS256))
	assert.True(t, VerifyPKCE("verifier", "verifier", PKCEMethodPlain))
	assert.True(t, VerifyPKCE("verifier", "verifier", ""))
	assert.False(t, VerifyPKCE("verifier", "verifier", "S512"))
}
