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

// Package provider builds the authorization requests a wallet (acting as OpenID provider) sends to an authorization server.
package provider

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/crypto"
)

// AuthzRequestMethodData is an authorization request ready to be sent.
type AuthzRequestMethodData struct {
	// URL is the authorization endpoint with the request as query parameters.
	URL string
	// State is the state of the request, the authorization response must contain the same value.
	State string
	// JWT is the signed request object, if the request was signed.
	JWT string
	// CodeVerifier is the PKCE code_verifier, if the challenge was generated by the provider.
	CodeVerifier string
}

// OpenIDProvider creates authorization requests for a client (wallet).
type OpenIDProvider struct {
	redirectURI string
	signer      AuthorizationRequestSigner
	metadata    oauth.ClientMetadata
	clientID    string
}

// NewOpenIDProvider creates an OpenIDProvider. redirectURI is where authorization responses are expected,
// metadata is sent as client_metadata in every request.
func NewOpenIDProvider(redirectURI string, signer AuthorizationRequestSigner, metadata oauth.ClientMetadata, clientID string) *OpenIDProvider {
	return &OpenIDProvider{
		redirectURI: redirectURI,
		signer:      signer,
		metadata:    metadata,
		clientID:    clientID,
	}
}

// CreateBaseAuthzRequest creates an authorization request for the authorization endpoint at the given URL.
// The scope must contain openid. If no PKCE challenge is given, a code verifier is generated and returned with the request.
// For the JWTObject location the request is signed for the given audience, and added to the parameters as request object.
func (p *OpenIDProvider) CreateBaseAuthzRequest(ctx context.Context, url string, location oauth.AuthzRequestLocation, responseType string,
	details oauth.AuthorizationDetails, scope string, audience string, pkce *crypto.PKCEChallenge) (*AuthzRequestMethodData, error) {
	if !strings.Contains(scope, oauth.DefaultScope) {
		return nil, oauth.InvalidDataProvided("Scope must contain %s", oauth.DefaultScope)
	}
	result := &AuthzRequestMethodData{State: uuid.NewString()}
	if pkce == nil {
		generated := crypto.NewPKCEChallenge("")
		pkce = &generated
		result.CodeVerifier = generated.CodeVerifier
	}
	metadata := p.metadata
	request := oauth.AuthzRequest{
		ResponseType:         responseType,
		ClientID:             p.clientID,
		RedirectURI:          p.redirectURI,
		Scope:                scope,
		State:                result.State,
		AuthorizationDetails: []oauth.AuthorizationDetails{details},
		CodeChallenge:        pkce.CodeChallenge,
		CodeChallengeMethod:  pkce.Method,
		ClientMetadata:       &metadata,
	}
	switch location {
	case oauth.PlainRequest:
	case oauth.JWTObject:
		jwt, err := p.signer.SignAuthorizationRequest(ctx, request, audience)
		if err != nil {
			return nil, err
		}
		request.Request = jwt
		result.JWT = jwt
	default:
		return nil, oauth.InternalError("Unsupported request location: %d", location)
	}
	params, err := request.QueryParams()
	if err != nil {
		return nil, oauth.InternalError("%s", err.Error())
	}
	separator := "/?"
	if strings.Contains(url, "?") {
		separator = "&"
	}
	result.URL = url + separator + params.Encode()
	return result, nil
}
