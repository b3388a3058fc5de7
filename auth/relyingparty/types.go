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
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/vcr/pe"
	"github.com/nuts-foundation/openid4vc/vcr/verifier"
)

// RequestOptions contains the optional parameters of ID token and VP token requests.
type RequestOptions struct {
	// ResponseMode defaults to direct_post.
	ResponseMode string
	// Nonce defaults to a random UUID.
	Nonce string
	// Scope defaults to openid.
	Scope string
	State string
	// Expiration is the lifetime of the request object, it defaults to 10 minutes.
	Expiration time.Duration
	// AdditionalClaims are added to the request object.
	AdditionalClaims map[string]interface{}
}

// VpTokenRequestOptions contains the parameters of VP token requests. Either PresentationDefinition or
// PresentationDefinitionURI must be set.
type VpTokenRequestOptions struct {
	RequestOptions
	PresentationDefinition    *pe.PresentationDefinition
	PresentationDefinitionURI string
}

// AuthzRequestVerifiers contains the optional checks applied to an authorization request.
type AuthzRequestVerifiers struct {
	Scope                ScopeVerifier
	AuthorizationDetails AuthorizationDetailsVerifier
	// IssuerState makes the issuer_state parameter required.
	IssuerState IssuerStateVerifier
}

// ValidatedClientMetadata is the client metadata, restricted to what the relying party supports as well.
type ValidatedClientMetadata struct {
	ResponseTypesSupported []string
	// IDTokenAlg contains the ID token signing algorithms supported by both client and relying party.
	IDTokenAlg []string
	// VPFormats contains the formats supported by both client and relying party, with the algorithms both support.
	VPFormats             oauth.VpFormatsSupported
	AuthorizationEndpoint string
}

// VerifiedBaseAuthzRequest is the result of VerifyBaseAuthzRequest.
type VerifiedBaseAuthzRequest struct {
	ValidatedClientMetadata ValidatedClientMetadata
	// AuthzRequest contains the request parameters, with the resolved client metadata.
	AuthzRequest oauth.AuthzRequest
	// ServiceWalletJWK is the key that signed the request object. It's nil for plain requests.
	ServiceWalletJWK jwk.Key
}

// VerifiedIdTokenResponse is the result of VerifyIdTokenResponse.
type VerifiedIdTokenResponse struct {
	Token       string
	DIDDocument *did.Document
}

// VPTokenResponse is an authorization response for the vp_token response type.
type VPTokenResponse struct {
	VpToken                interface{}               `json:"vp_token"`
	PresentationSubmission pe.PresentationSubmission `json:"presentation_submission"`
	State                  string                    `json:"state,omitempty"`
}

// VerifiedVpTokenResponse is the result of VerifyVpTokenResponse.
type VerifiedVpTokenResponse struct {
	Token          interface{}
	VpInternalData verifier.ExtractedData
}

// AccessTokenOptions contains the verifiers for the supported grant types, and the optional parameters of the token response.
type AccessTokenOptions struct {
	AuthorizationCode           AuthorizationCodeVerifier
	CodeVerifier                CodeVerifierVerifier
	PreAuthorizedCode           PreAuthorizedCodeVerifier
	ClientAssertionKeyRetriever ClientAssertionKeyRetriever
	// CNonce defaults to a random UUID.
	CNonce string
	// CNonceExpiresIn defaults to oauth.CNonceExpiration.
	CNonceExpiresIn time.Duration
	// AccessTokenExpiresIn defaults to oauth.AccessTokenExpiration.
	AccessTokenExpiresIn time.Duration
}
