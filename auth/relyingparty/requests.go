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
	"net/url"

	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/vcr/pe"
)

// RequestParams are the parameters of an authorization request sent by the relying party to a wallet.
type RequestParams struct {
	ResponseType string `json:"response_type"`
	ClientID     string `json:"client_id"`
	Scope        string `json:"scope"`
	RedirectURI  string `json:"redirect_uri"`
	ResponseMode string `json:"response_mode,omitempty"`
	State        string `json:"state,omitempty"`
	Nonce        string `json:"nonce,omitempty"`
	// PresentationDefinition and PresentationDefinitionURI are only used in VP token requests.
	PresentationDefinition    *pe.PresentationDefinition `json:"presentation_definition,omitempty"`
	PresentationDefinitionURI string                     `json:"presentation_definition_uri,omitempty"`
}

// claims returns the parameters as JWT claims.
func (p RequestParams) claims() map[string]interface{} {
	result := map[string]interface{}{
		oauth.ResponseTypeParam: p.ResponseType,
		oauth.ClientIDParam:     p.ClientID,
		oauth.ScopeParam:        p.Scope,
		oauth.RedirectURIParam:  p.RedirectURI,
	}
	setIfNotEmpty := func(key string, value string) {
		if value != "" {
			result[key] = value
		}
	}
	setIfNotEmpty(oauth.ResponseModeParam, p.ResponseMode)
	setIfNotEmpty(oauth.StateParam, p.State)
	setIfNotEmpty(oauth.NonceParam, p.Nonce)
	setIfNotEmpty(oauth.PresentationDefUriParam, p.PresentationDefinitionURI)
	if p.PresentationDefinition != nil {
		result[oauth.PresentationDefParam] = p.PresentationDefinition
	}
	return result
}

// query returns the parameters that are sent in the URL next to the request object.
// The presentation definition is only sent in the request object.
func (p RequestParams) query() url.Values {
	result := url.Values{}
	for key, value := range p.claims() {
		if key == oauth.PresentationDefParam || key == oauth.PresentationDefUriParam {
			continue
		}
		result.Set(key, value.(string))
	}
	return result
}

// IdTokenRequest is an authorization request for an ID token.
type IdTokenRequest struct {
	Params RequestParams
	// Request is the signed request object.
	Request  string
	endpoint string
}

// URI returns the request as URL on the authorization endpoint of the client.
func (r IdTokenRequest) URI() string {
	return requestURI(r.endpoint, r.Params, r.Request)
}

// VpTokenRequest is an authorization request for a VP token.
type VpTokenRequest struct {
	Params RequestParams
	// Request is the signed request object.
	Request  string
	endpoint string
}

// URI returns the request as URL on the authorization endpoint of the client.
// The presentation definition (or its URI) is only included in the request object.
func (r VpTokenRequest) URI() string {
	return requestURI(r.endpoint, r.Params, r.Request)
}

func requestURI(endpoint string, params RequestParams, request string) string {
	query := params.query()
	query.Set(oauth.RequestParam, request)
	return endpoint + "?" + query.Encode()
}

// AuthorizationResponse is an authorization response for the code response type.
type AuthorizationResponse struct {
	RedirectURI string
	Code        string
	State       string
}

// URI returns the response as redirect URL.
func (r AuthorizationResponse) URI() string {
	query := url.Values{}
	query.Set(oauth.CodeParam, r.Code)
	if r.State != "" {
		query.Set(oauth.StateParam, r.State)
	}
	return r.RedirectURI + "?" + query.Encode()
}
