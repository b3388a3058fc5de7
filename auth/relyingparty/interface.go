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

package relyingparty

import (
	"context"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/crypto"
)

// ClientMetadataProvider provides the metadata assumed for clients that don't specify (all of) their metadata.
type ClientMetadataProvider interface {
	// DefaultClientMetadata returns the default client metadata. Metadata sent by the client overrides it per parameter.
	DefaultClientMetadata(ctx context.Context) (oauth.ClientMetadata, error)
}

// TokenSigner signs JWTs (request objects, access tokens and ID tokens) on behalf of the relying party.
type TokenSigner interface {
	// SignToken signs the claims and returns the compact JWT. If algs is not empty, one of them must be used.
	SignToken(ctx context.Context, claims map[string]interface{}, algs []string) (string, error)
}

// IDTokenVerifier performs additional checks on an ID token after its signature has been verified.
type IDTokenVerifier interface {
	// VerifyIDToken returns an error if the ID token must not be accepted.
	VerifyIDToken(ctx context.Context, token *crypto.Token, document *did.Document) error
}

// ScopeVerifier checks the scope of an authorization request.
type ScopeVerifier interface {
	VerifyScope(ctx context.Context, scope string) error
}

// AuthorizationDetailsVerifier checks an entry of the authorization_details of an authorization request.
type AuthorizationDetailsVerifier interface {
	VerifyAuthorizationDetails(ctx context.Context, details oauth.AuthorizationDetails) error
}

// IssuerStateVerifier checks the issuer_state of an authorization request, which was handed out in a credential offer.
type IssuerStateVerifier interface {
	VerifyIssuerState(ctx context.Context, issuerState string) error
}

// AuthorizationCodeVerifier checks an authorization code presented in a token request.
type AuthorizationCodeVerifier interface {
	VerifyAuthorizationCode(ctx context.Context, clientID string, code string) error
}

// CodeVerifierVerifier checks the PKCE code_verifier of a token request against the code_challenge of the authorization request.
type CodeVerifierVerifier interface {
	VerifyCodeVerifier(ctx context.Context, clientID string, codeVerifier string) error
}

// PreAuthorizedCodeVerifier checks a pre-authorized code (and the user PIN, if required).
type PreAuthorizedCodeVerifier interface {
	// VerifyPreAuthorizedCode returns the client the code was issued for. clientID is empty if the client didn't identify itself.
	VerifyPreAuthorizedCode(ctx context.Context, clientID string, code string, pin string) (string, error)
}

// ClientAssertionKeyRetriever returns the key a client signs its client assertions (RFC7523) with.
type ClientAssertionKeyRetriever interface {
	ClientAssertionKey(ctx context.Context, clientID string) (jwk.Key, error)
}
