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

// Package oauth contains the OAuth2/OpenID4VC protocol types, parameters and errors shared by issuer, relying party and provider.
package oauth

import (
	"encoding/json"
	"net/url"
	"time"
)

// oauth parameter keys
const (
	// AuthorizationDetailsParam is the parameter name for the authorization_details parameter. (RFC9396)
	AuthorizationDetailsParam = "authorization_details"
	// ClientIDParam is the parameter name for the client_id parameter. (RFC6749)
	ClientIDParam = "client_id"
	// ClientMetadataParam is the parameter name for the client_metadata parameter. (OpenID4VP)
	ClientMetadataParam = "client_metadata"
	// CodeParam is the parameter name for the code parameter. (RFC6749)
	CodeParam = "code"
	// CodeChallengeParam is the parameter name for the code_challenge parameter. (RFC7636)
	CodeChallengeParam = "code_challenge"
	// CodeChallengeMethodParam is the parameter name for the code_challenge_method parameter. (RFC7636)
	CodeChallengeMethodParam = "code_challenge_method"
	// CredentialOfferParam is the parameter name for the credential_offer parameter. (OpenID4VCI)
	CredentialOfferParam = "credential_offer"
	// IssuerStateParam is the parameter name for the issuer_state parameter. (OpenID4VCI)
	IssuerStateParam = "issuer_state"
	// NonceParam is the parameter name for the nonce parameter
	NonceParam = "nonce"
	// PresentationDefParam is the parameter name for the OpenID4VP presentation_definition parameter. (OpenID4VP)
	PresentationDefParam = "presentation_definition"
	// PresentationDefUriParam is the parameter name for the OpenID4VP presentation_definition_uri parameter. (OpenID4VP)
	PresentationDefUriParam = "presentation_definition_uri"
	// RedirectURIParam is the parameter name for the redirect_uri parameter. (RFC6749)
	RedirectURIParam = "redirect_uri"
	// RequestParam is the parameter name for the request parameter.	(RFC9101)
	RequestParam = "request"
	// ResponseModeParam is the parameter name for the OAuth2 response_mode parameter.
	ResponseModeParam = "response_mode"
	// ResponseTypeParam is the parameter name for the response_type parameter. (RFC6749)
	ResponseTypeParam = "response_type"
	// ScopeParam is the parameter name for the scope parameter. (RFC6749)
	ScopeParam = "scope"
	// StateParam is the parameter name for the state parameter. (RFC6749)
	StateParam = "state"
)

// grant types
const (
	// AuthorizationCodeGrantType is the grant_type for the authorization_code grant type. (RFC6749)
	AuthorizationCodeGrantType = "authorization_code"
	// PreAuthorizedCodeGrantType is the grant_type for the pre-authorized_code grant type. (OpenID4VCI)
	PreAuthorizedCodeGrantType = "urn:ietf:params:oauth:grant-type:pre-authorized_code"
	// VpTokenGrantType is the grant_type for the vp_token grant type.
	VpTokenGrantType = "vp_token"
)

// response types
const (
	CodeResponseType    = "code"
	TokenResponseType   = "token"
	IDTokenResponseType = "id_token"
	VPTokenResponseType = "vp_token"
)

// response modes
const (
	DirectPostResponseMode = "direct_post"
	PostResponseMode       = "post"
	QueryResponseMode      = "query"
	FragmentResponseMode   = "fragment"
)

// ClientAssertionTypeJWTBearer is the client_assertion_type for JWT client assertions (RFC7523).
const ClientAssertionTypeJWTBearer = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"

// DefaultScope is the scope used when no scope is specified.
const DefaultScope = "openid"

// OpenIDCredentialAuthorizationDetailsType is the authorization_details type for credential issuance. (OpenID4VCI)
const OpenIDCredentialAuthorizationDetailsType = "openid_credential"

// CredentialOfferScheme is the URI scheme for credential offers sent to a wallet.
const CredentialOfferScheme = "openid-credential-offer://"

const (
	// CNonceExpiration is the default lifetime of a c_nonce.
	CNonceExpiration = time.Hour
	// AccessTokenExpiration is the default lifetime of an access token.
	AccessTokenExpiration = time.Hour
	// RequestExpiration is the default lifetime of ID token and VP token requests.
	RequestExpiration = 10 * time.Minute
)

// AlgValues lists the signing algorithms supported for a format.
type AlgValues struct {
	AlgValuesSupported []string `json:"alg_values_supported"`
}

// VpFormatsSupported maps credential and presentation formats (e.g. jwt_vc_json, jwt_vp_json) to the algorithms supported for them.
type VpFormatsSupported map[string]AlgValues

// AuthorizationServerMetadata defines the OAuth Authorization Server metadata.
// Specified by https://www.rfc-editor.org/rfc/rfc8414.txt
type AuthorizationServerMetadata struct {
	// Issuer defines the authorization server's identifier, which is a URL that uses the "https" scheme and has no query or fragment components.
	Issuer                         string   `json:"issuer"`
	AuthorizationEndpoint          string   `json:"authorization_endpoint,omitempty"`
	TokenEndpoint                  string   `json:"token_endpoint,omitempty"`
	UserinfoEndpoint               string   `json:"userinfo_endpoint,omitempty"`
	PresentationDefinitionEndpoint string   `json:"presentation_definition_endpoint,omitempty"`
	JwksURI                        string   `json:"jwks_uri,omitempty"`
	ScopesSupported                []string `json:"scopes_supported,omitempty"`
	// ResponseTypesSupported defines what response types a client can request
	ResponseTypesSupported []string `json:"response_types_supported"`
	ResponseModesSupported []string `json:"response_modes_supported,omitempty"`
	// GrantTypesSupported is a list of the OAuth 2.0 grant type values that this authorization server supports.
	GrantTypesSupported                    []string `json:"grant_types_supported,omitempty"`
	SubjectTypesSupported                  []string `json:"subject_types_supported,omitempty"`
	IDTokenSigningAlgValuesSupported       []string `json:"id_token_signing_alg_values_supported,omitempty"`
	RequestObjectSigningAlgValuesSupported []string `json:"request_object_signing_alg_values_supported,omitempty"`
	// RequestParameterSupported indicates whether request objects (JWT-secured authorization requests) are accepted.
	RequestParameterSupported         bool               `json:"request_parameter_supported,omitempty"`
	RequestURIParameterSupported      bool               `json:"request_uri_parameter_supported,omitempty"`
	TokenEndpointAuthMethodsSupported []string           `json:"token_endpoint_auth_methods_supported,omitempty"`
	VPFormatsSupported                VpFormatsSupported `json:"vp_formats_supported,omitempty"`
	SubjectSyntaxTypesSupported       []string           `json:"subject_syntax_types_supported,omitempty"`
	SubjectTrustFrameworksSupported   []string           `json:"subject_trust_frameworks_supported,omitempty"`
	IDTokenTypesSupported             []string           `json:"id_token_types_supported,omitempty"`
}

// SupportsGrantType returns true if the given grant type is listed in grant_types_supported.
func (m AuthorizationServerMetadata) SupportsGrantType(grantType string) bool {
	return contains(m.GrantTypesSupported, grantType)
}

// ClientMetadata defines the metadata of a wallet. Holder wallets (natural persons) don't publish keys,
// service wallets (legal entities) must specify a jwks_uri.
type ClientMetadata struct {
	AuthorizationEndpoint                  string             `json:"authorization_endpoint,omitempty"`
	ScopesSupported                        []string           `json:"scopes_supported,omitempty"`
	ResponseTypesSupported                 []string           `json:"response_types_supported,omitempty"`
	SubjectTypesSupported                  []string           `json:"subject_types_supported,omitempty"`
	IDTokenSigningAlgValuesSupported       []string           `json:"id_token_signing_alg_values_supported,omitempty"`
	RequestObjectSigningAlgValuesSupported []string           `json:"request_object_signing_alg_values_supported,omitempty"`
	VPFormatsSupported                     VpFormatsSupported `json:"vp_formats_supported,omitempty"`
	SubjectSyntaxTypesSupported            []string           `json:"subject_syntax_types_supported,omitempty"`
	IDTokenTypesSupported                  []string           `json:"id_token_types_supported,omitempty"`
	// JwksURI references the wallet's JSON Web Key Set. Required for service wallets.
	JwksURI string `json:"jwks_uri,omitempty"`
}

// AuthorizationDetails defines the details of an authorization request (RFC9396), as used by OpenID4VCI.
type AuthorizationDetails struct {
	Type       string   `json:"type"`
	Format     string   `json:"format,omitempty"`
	Types      []string `json:"types,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	Actions    []string `json:"actions,omitempty"`
	Datatypes  []string `json:"datatypes,omitempty"`
	Identifier string   `json:"identifier,omitempty"`
	Privileges []string `json:"privileges,omitempty"`
}

// AuthzRequest is an authorization request as defined by RFC6749 and RFC9396.
// If Request is set, it contains the request signed as JWT and takes precedence over the plain parameters.
type AuthzRequest struct {
	ResponseType         string                 `json:"response_type"`
	ClientID             string                 `json:"client_id"`
	RedirectURI          string                 `json:"redirect_uri"`
	Scope                string                 `json:"scope"`
	IssuerState          string                 `json:"issuer_state,omitempty"`
	State                string                 `json:"state,omitempty"`
	AuthorizationDetails []AuthorizationDetails `json:"authorization_details,omitempty"`
	Nonce                string                 `json:"nonce,omitempty"`
	CodeChallenge        string                 `json:"code_challenge,omitempty"`
	CodeChallengeMethod  string                 `json:"code_challenge_method,omitempty"`
	ClientMetadata       *ClientMetadata        `json:"client_metadata,omitempty"`
	// Request is the authorization request as signed JWT (RFC9101).
	Request string `json:"request,omitempty"`
}

// QueryParams encodes the request as URL query parameters. Structured parameters are JSON encoded.
func (r AuthzRequest) QueryParams() (url.Values, error) {
	result := url.Values{}
	setIfNotEmpty(result, ResponseTypeParam, r.ResponseType)
	setIfNotEmpty(result, ClientIDParam, r.ClientID)
	setIfNotEmpty(result, RedirectURIParam, r.RedirectURI)
	setIfNotEmpty(result, ScopeParam, r.Scope)
	setIfNotEmpty(result, IssuerStateParam, r.IssuerState)
	setIfNotEmpty(result, StateParam, r.State)
	setIfNotEmpty(result, NonceParam, r.Nonce)
	setIfNotEmpty(result, CodeChallengeParam, r.CodeChallenge)
	setIfNotEmpty(result, CodeChallengeMethodParam, r.CodeChallengeMethod)
	if len(r.AuthorizationDetails) > 0 {
		data, err := json.Marshal(r.AuthorizationDetails)
		if err != nil {
			return nil, err
		}
		result.Set(AuthorizationDetailsParam, string(data))
	}
	if r.ClientMetadata != nil {
		data, err := json.Marshal(r.ClientMetadata)
		if err != nil {
			return nil, err
		}
		result.Set(ClientMetadataParam, string(data))
	}
	setIfNotEmpty(result, RequestParam, r.Request)
	return result, nil
}

// AuthzRequestLocation defines where the authorization request parameters are placed.
type AuthzRequestLocation int

const (
	// PlainRequest means the request is not signed and its parameters are sent as query parameters.
	PlainRequest AuthzRequestLocation = iota
	// JWTObject means the request is signed and sent as JWT in the request parameter.
	JWTObject
)

// TokenRequest is an access token request as defined by RFC6749 and OpenID4VCI.
type TokenRequest struct {
	GrantType           string `json:"grant_type"`
	ClientID            string `json:"client_id,omitempty"`
	Code                string `json:"code,omitempty"`
	CodeVerifier        string `json:"code_verifier,omitempty"`
	PreAuthorizedCode   string `json:"pre-authorized_code,omitempty"`
	UserPin             string `json:"user_pin,omitempty"`
	VpToken             string `json:"vp_token,omitempty"`
	ClientAssertion     string `json:"client_assertion,omitempty"`
	ClientAssertionType string `json:"client_assertion_type,omitempty"`
}

// TokenResponse is the OAuth access token response, extended with the OpenID4VCI c_nonce parameters.
type TokenResponse struct {
	AccessToken     string `json:"access_token"`
	IDToken         string `json:"id_token,omitempty"`
	TokenType       string `json:"token_type"`
	ExpiresIn       int    `json:"expires_in"`
	CNonce          string `json:"c_nonce"`
	CNonceExpiresIn int    `json:"c_nonce_expires_in"`
}

// IDTokenResponse is an authorization response for the id_token response type.
type IDTokenResponse struct {
	IDToken string `json:"id_token"`
	State   string `json:"state,omitempty"`
}

// CredentialSupported describes a credential an issuer can issue.
type CredentialSupported struct {
	Format  string                        `json:"format"`
	ID      string                        `json:"id,omitempty"`
	Types   []string                      `json:"types"`
	Display []VerifiableCredentialDisplay `json:"display,omitempty"`
}

// VerifiableCredentialDisplay contains display information for a credential.
type VerifiableCredentialDisplay struct {
	Name            string          `json:"name"`
	Locale          string          `json:"locale,omitempty"`
	Logo            json.RawMessage `json:"logo,omitempty"`
	URL             string          `json:"url,omitempty"`
	AltText         string          `json:"alt_text,omitempty"`
	Description     string          `json:"description,omitempty"`
	BackgroundColor string          `json:"background_color,omitempty"`
	TextColor       string          `json:"text_color,omitempty"`
}

// IssuerMetadata is the metadata of an OpenID4VCI credential issuer.
type IssuerMetadata struct {
	CredentialIssuer           string                `json:"credential_issuer"`
	AuthorizationServer        string                `json:"authorization_server,omitempty"`
	CredentialEndpoint         string                `json:"credential_endpoint"`
	DeferredCredentialEndpoint string                `json:"deferred_credential_endpoint,omitempty"`
	BatchCredentialEndpoint    string                `json:"batch_credential_endpoint,omitempty"`
	CredentialsSupported       []CredentialSupported `json:"credentials_supported"`
}

// CredentialRequest is an OpenID4VCI credential request.
type CredentialRequest struct {
	Types  []string               `json:"types"`
	Format string                 `json:"format"`
	Proof  map[string]interface{} `json:"proof,omitempty"`
}

// CredentialResponse is an OpenID4VCI credential response. It either contains a credential, or an acceptance token
// for deferred issuance.
type CredentialResponse struct {
	Format          string      `json:"format,omitempty"`
	Credential      interface{} `json:"credential,omitempty"`
	AcceptanceToken string      `json:"acceptance_token,omitempty"`
	CNonce          string      `json:"c_nonce,omitempty"`
	CNonceExpiresIn int         `json:"c_nonce_expires_in,omitempty"`
}

func contains(values []string, value string) bool {
	for _, curr := range values {
		if curr == value {
			return true
		}
	}
	return false
}

func setIfNotEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
