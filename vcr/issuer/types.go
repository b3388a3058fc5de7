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

package issuer

import (
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
)

// CredentialDataOrDeferred is either the subject data of a credential (with optional validity) or a deferred code.
type CredentialDataOrDeferred struct {
	// Data contains the claims of the credential subject. The subject id is added by the issuer.
	Data map[string]interface{}
	// DeferredCode is returned to the client as acceptance_token when the credential can't be issued yet.
	DeferredCode string
	// IssuanceDate overrides the moment of issuance (RFC3339), defaults to now.
	IssuanceDate string
	// ValidFrom (RFC3339) defaults to the issuance date, it can't be before it.
	ValidFrom string
	// ValidUntil (RFC3339) can't be combined with ExpiresInSeconds.
	ValidUntil string
	// ExpiresInSeconds sets the expiration relative to the issuance date.
	ExpiresInSeconds int64
}

// DeferredResult is the outcome of exchanging an acceptance token.
// Either DeferredCode is set (the credential is still not ready), or it contains the data, types and format of the credential.
type DeferredResult struct {
	CredentialDataOrDeferred
	Types  []string
	Format credential.FormatID
}

// AccessToken is the access token presented with a credential request.
// It's either the raw token, which is verified by the issuer, or a token the caller already verified.
type AccessToken struct {
	raw      string
	verified *crypto.Token
}

// RawAccessToken wraps an access token that still needs to be verified. Options.TokenVerification is required to do so.
func RawAccessToken(raw string) AccessToken {
	return AccessToken{raw: raw}
}

// VerifiedAccessToken wraps an access token that has already been verified by the caller.
func VerifiedAccessToken(token *crypto.Token) AccessToken {
	return AccessToken{verified: token}
}

// TokenVerification contains what's needed to verify a raw access token.
type TokenVerification struct {
	// AuthorizationServerKey is the public key of the authorization server that issued the access token.
	AuthorizationServerKey jwk.Key
	// Verifier is optional, it performs additional checks on the token.
	Verifier AccessTokenVerifier
}

// Options are the per-call parameters of credential issuance. All fields are optional.
type Options struct {
	TokenVerification *TokenVerification
	StatusProvider    StatusProvider
	TermsOfUse        TermsOfUseProvider
	// CNonce is the c_nonce to return to the client, a random one is generated when empty.
	CNonce string
	// CNonceExpiresIn is the lifetime of the c_nonce in seconds, defaults to an hour.
	CNonceExpiresIn int
}
