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

package session

import (
	"context"
	"testing"

	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationCodeStore(t *testing.T) {
	ctx := context.Background()
	const clientID = "did:example:client"
	pkce := crypto.NewPKCEChallenge("")
	request := oauth.AuthzRequest{ClientID: clientID, CodeChallenge: pkce.CodeChallenge, CodeChallengeMethod: pkce.Method}
	t.Run("ok - S256", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, err := store.RegisterCode(request)
		require.NoError(t, err)

		require.NoError(t, store.VerifyAuthorizationCode(ctx, clientID, code))
		err = store.VerifyCodeVerifier(ctx, clientID, pkce.CodeVerifier)

		assert.NoError(t, err)
	})
	t.Run("ok - plain", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, err := store.RegisterCode(oauth.AuthzRequest{ClientID: clientID, CodeChallenge: "verifier", CodeChallengeMethod: crypto.PKCEMethodPlain})
		require.NoError(t, err)

		require.NoError(t, store.VerifyAuthorizationCode(ctx, clientID, code))
		err = store.VerifyCodeVerifier(ctx, clientID, "verifier")

		assert.NoError(t, err)
	})
	t.Run("code can be redeemed once", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(request)
		require.NoError(t, store.VerifyAuthorizationCode(ctx, clientID, code))

		err := store.VerifyAuthorizationCode(ctx, clientID, code)

		assert.ErrorIs(t, err, ErrUnknownCode)
	})
	t.Run("unknown code", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))

		err := store.VerifyAuthorizationCode(ctx, clientID, "code")

		assert.ErrorIs(t, err, ErrUnknownCode)
	})
	t.Run("code issued to another client", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(request)

		err := store.VerifyAuthorizationCode(ctx, "did:example:other", code)

		assert.ErrorIs(t, err, ErrCodeNotIssuedToClient)
		// the code is consumed
		assert.ErrorIs(t, store.VerifyAuthorizationCode(ctx, clientID, code), ErrUnknownCode)
	})
	t.Run("wrong code_verifier", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(request)
		require.NoError(t, store.VerifyAuthorizationCode(ctx, clientID, code))

		err := store.VerifyCodeVerifier(ctx, clientID, "other")

		assert.ErrorIs(t, err, ErrCodeVerifierMismatch)
		// the challenge is consumed
		assert.ErrorIs(t, store.VerifyCodeVerifier(ctx, clientID, pkce.CodeVerifier), ErrNoCodeChallenge)
	})
	t.Run("no code redeemed", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))

		err := store.VerifyCodeVerifier(ctx, clientID, pkce.CodeVerifier)

		assert.ErrorIs(t, err, ErrNoCodeChallenge)
	})
	t.Run("request without code_challenge", func(t *testing.T) {
		store := NewAuthorizationCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(oauth.AuthzRequest{ClientID: clientID})
		require.NoError(t, store.VerifyAuthorizationCode(ctx, clientID, code))

		err := store.VerifyCodeVerifier(ctx, clientID, pkce.CodeVerifier)

		assert.ErrorIs(t, err, ErrNoCodeChallenge)
	})
}

func TestPreAuthorizedCodeStore(t *testing.T) {
	ctx := context.Background()
	const clientID = "did:example:client"
	t.Run("ok - bound to client", func(t *testing.T) {
		store := NewPreAuthorizedCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, err := store.RegisterCode(clientID, "")
		require.NoError(t, err)

		actual, err := store.VerifyPreAuthorizedCode(ctx, "", code, "")

		require.NoError(t, err)
		assert.Equal(t, clientID, actual)
	})
	t.Run("ok - any client", func(t *testing.T) {
		store := NewPreAuthorizedCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode("", "")

		actual, err := store.VerifyPreAuthorizedCode(ctx, "did:example:wallet", code, "")

		require.NoError(t, err)
		assert.Equal(t, "did:example:wallet", actual)
	})
	t.Run("ok - with PIN", func(t *testing.T) {
		store := NewPreAuthorizedCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(clientID, "1234")

		actual, err := store.VerifyPreAuthorizedCode(ctx, clientID, code, "1234")

		require.NoError(t, err)
		assert.Equal(t, clientID, actual)
	})
	t.Run("wrong PIN consumes the code", func(t *testing.T) {
		store := NewPreAuthorizedCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(clientID, "1234")

		_, err := store.VerifyPreAuthorizedCode(ctx, clientID, code, "0000")

		assert.ErrorIs(t, err, ErrInvalidPIN)
		_, err = store.VerifyPreAuthorizedCode(ctx, clientID, code, "1234")
		assert.ErrorIs(t, err, ErrUnknownCode)
	})
	t.Run("missing PIN", func(t *testing.T) {
		store := NewPreAuthorizedCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(clientID, "1234")

		_, err := store.VerifyPreAuthorizedCode(ctx, clientID, code, "")

		assert.ErrorIs(t, err, ErrInvalidPIN)
	})
	t.Run("other client", func(t *testing.T) {
		store := NewPreAuthorizedCodeStore(storage.NewTestInMemorySessionDatabase(t))
		code, _ := store.RegisterCode(clientID, "")

		_, err := store.VerifyPreAuthorizedCode(ctx, "did:example:other", code, "")

		assert.ErrorIs(t, err, ErrCodeNotIssuedToClient)
	})
	t.Run("unknown code", func(t *testing.T) {
		store := NewPreAuthorizedCodeStore(storage.NewTestInMemorySessionDatabase(t))

		_, err := store.VerifyPreAuthorizedCode(ctx, clientID, "code", "")

		assert.ErrorIs(t, err, ErrUnknownCode)
	})
}
