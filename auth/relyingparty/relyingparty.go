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

// Package relyingparty implements the OpenID relying party: it requests ID tokens and VP tokens from wallets,
// verifies authorization requests and responses, and issues access tokens.
package relyingparty

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nuts-foundation/openid4vc/auth/log"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/vcr/pe"
	"github.com/nuts-foundation/openid4vc/vcr/schema"
	"github.com/nuts-foundation/openid4vc/vcr/verifier"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
	"github.com/prometheus/client_golang/prometheus"
)

var nowFunc = time.Now

var accessTokensIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Name:      "access_tokens_issued_total",
	Help:      "Number of issued access tokens, by grant type.",
}, []string{"grant_type"})

// OpenIDReliyingParty is the name the relying party is documented under.
type OpenIDReliyingParty = OpenIDRelyingParty

// OpenIDRelyingParty is an OpenID relying party (and OAuth2 authorization server).
// Supported grant types are authorization_code and pre-authorized_code.
type OpenIDRelyingParty struct {
	defaultMetadata     ClientMetadataProvider
	metadata            oauth.AuthorizationServerMetadata
	didResolver         resolver.DIDResolver
	credentialValidator verifier.CredentialValidator
	fetcher             core.Fetcher
	schemaLoader        *schema.Loader
}

// NewOpenIDRelyingParty creates an OpenIDRelyingParty.
// The fetcher retrieves JWK sets of clients and credential schemas. credentialValidator is applied to every
// credential of a verified presentation, it may be nil.
func NewOpenIDRelyingParty(defaultMetadata ClientMetadataProvider, metadata oauth.AuthorizationServerMetadata, didResolver resolver.DIDResolver,
	credentialValidator verifier.CredentialValidator, fetcher core.Fetcher) *OpenIDRelyingParty {
	if err := core.RegisterCollectors(nil, accessTokensIssued); err != nil {
		log.Logger().WithError(err).Warn("Unable to register relying party metrics")
	}
	return &OpenIDRelyingParty{
		defaultMetadata:     defaultMetadata,
		metadata:            metadata,
		didResolver:         didResolver,
		credentialValidator: credentialValidator,
		fetcher:             fetcher,
		schemaLoader:        schema.NewLoader(fetcher),
	}
}

// CreateIdTokenRequest creates an authorization request for an ID token, to be sent to the authorization endpoint of a wallet.
// The request object is signed for the given audience.
func (r *OpenIDRelyingParty) CreateIdTokenRequest(ctx context.Context, clientAuthorizationEndpoint string, audience string, redirectURI string,
	signer TokenSigner, options RequestOptions) (*IdTokenRequest, error) {
	params := r.requestParams(oauth.IDTokenResponseType, redirectURI, options)
	request, err := r.signRequest(ctx, params, audience, signer, options)
	if err != nil {
		return nil, err
	}
	return &IdTokenRequest{Params: params, Request: request, endpoint: clientAuthorizationEndpoint}, nil
}

// CreateVpTokenRequest creates an authorization request for a VP token, to be sent to the authorization endpoint of a wallet.
// The request object is signed for the given audience.
func (r *OpenIDRelyingParty) CreateVpTokenRequest(ctx context.Context, clientAuthorizationEndpoint string, audience string, redirectURI string,
	signer TokenSigner, options VpTokenRequestOptions) (*VpTokenRequest, error) {
	params := r.requestParams(oauth.VPTokenResponseType, redirectURI, options.RequestOptions)
	switch {
	case options.PresentationDefinition != nil:
		params.PresentationDefinition = options.PresentationDefinition
	case options.PresentationDefinitionURI != "":
		params.PresentationDefinitionURI = options.PresentationDefinitionURI
	default:
		return nil, oauth.InvalidRequestError("Either presentation_definition or presentation_definition URI must be defined")
	}
	request, err := r.signRequest(ctx, params, audience, signer, options.RequestOptions)
	if err != nil {
		return nil, err
	}
	return &VpTokenRequest{Params: params, Request: request, endpoint: clientAuthorizationEndpoint}, nil
}

func (r *OpenIDRelyingParty) requestParams(responseType string, redirectURI string, options RequestOptions) RequestParams {
	params := RequestParams{
		ResponseType: responseType,
		ClientID:     r.metadata.Issuer,
		Scope:        options.Scope,
		RedirectURI:  redirectURI,
		ResponseMode: options.ResponseMode,
		State:        options.State,
		Nonce:        options.Nonce,
	}
	if params.Scope == "" {
		params.Scope = oauth.DefaultScope
	}
	if params.ResponseMode == "" {
		params.ResponseMode = oauth.DirectPostResponseMode
	}
	if params.Nonce == "" {
		params.Nonce = uuid.NewString()
	}
	return params
}

func (r *OpenIDRelyingParty) signRequest(ctx context.Context, params RequestParams, audience string, signer TokenSigner, options RequestOptions) (string, error) {
	expiration := options.Expiration
	if expiration == 0 {
		expiration = oauth.RequestExpiration
	}
	claims := params.claims()
	claims[jwt.AudienceKey] = audience
	claims[jwt.IssuerKey] = r.metadata.Issuer
	claims[jwt.ExpirationKey] = nowFunc().Add(expiration).Unix()
	for key, value := range options.AdditionalClaims {
		claims[key] = value
	}
	return signer.SignToken(ctx, claims, r.metadata.RequestObjectSigningAlgValuesSupported)
}

// VerifyBaseAuthzRequest verifies an authorization request sent by a client. If the request is sent as request object (JWT),
// it's verified using the keys published at the jwks_uri of the client metadata it contains.
// The client metadata is resolved against the default metadata, and restricted to what the relying party supports.
// If verifiers are given, the scope, authorization details and issuer state are verified as well.
func (r *OpenIDRelyingParty) VerifyBaseAuthzRequest(ctx context.Context, request oauth.AuthzRequest, verifiers *AuthzRequestVerifiers) (*VerifiedBaseAuthzRequest, error) {
	params := request
	var walletKey jwk.Key
	if request.Request != "" {
		var err error
		params, walletKey, err = r.verifyRequestObject(ctx, request.Request)
		if err != nil {
			return nil, err
		}
	}
	clientMetadata, err := r.resolveClientMetadata(ctx, params.ClientMetadata)
	if err != nil {
		return nil, err
	}
	params.ClientMetadata = clientMetadata
	result := &VerifiedBaseAuthzRequest{
		ValidatedClientMetadata: r.validateClientMetadata(*clientMetadata),
		AuthzRequest:            params,
		ServiceWalletJWK:        walletKey,
	}
	if verifiers != nil {
		if err = r.applyVerifiers(ctx, params, *verifiers); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *OpenIDRelyingParty) verifyRequestObject(ctx context.Context, requestObject string) (oauth.AuthzRequest, jwk.Key, error) {
	var params oauth.AuthzRequest
	if !r.metadata.RequestParameterSupported {
		return params, nil, oauth.InvalidRequestError("Unsupported request parameter")
	}
	token, err := crypto.ParseUnverified(requestObject)
	if err != nil {
		return params, nil, oauth.InvalidRequestError("%s", err.Error())
	}
	if len(r.metadata.RequestObjectSigningAlgValuesSupported) > 0 && !contains(r.metadata.RequestObjectSigningAlgValuesSupported, token.Algorithm()) {
		return params, nil, oauth.InvalidRequestError("Unsupported request signing alg")
	}
	if err = remarshal(token.Claims, &params); err != nil {
		return params, nil, oauth.InvalidRequestError("Invalid request object: %s", err.Error())
	}
	if params.ClientMetadata == nil || params.ClientMetadata.JwksURI == "" {
		return params, nil, oauth.InvalidRequestError("Expected client metadata with jwks_uri")
	}
	if token.KeyID() == "" {
		return params, nil, oauth.InvalidRequestError("No kid specify in JWT header")
	}
	keys, err := r.fetchJWKS(ctx, params.ClientMetadata.JwksURI)
	if err != nil {
		return params, nil, err
	}
	key, ok := keys.LookupKeyID(token.KeyID())
	if !ok {
		return params, nil, oauth.InvalidRequestError("No JWK found with kid %s", token.KeyID())
	}
	if _, err = crypto.VerifyJWT(requestObject, key, r.metadata.Issuer); err != nil {
		return params, nil, oauth.InvalidRequestError("%s", err.Error())
	}
	return params, key, nil
}

// fetchJWKS retrieves the JWK set published by a client.
func (r *OpenIDRelyingParty) fetchJWKS(ctx context.Context, jwksURI string) (jwk.Set, error) {
	data, err := r.fetcher.Fetch(ctx, jwksURI)
	if err != nil {
		return nil, oauth.InternalError("Can't recover credential issuer JWKs: %s", err.Error())
	}
	var document struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err = json.Unmarshal(data, &document); err != nil {
		return nil, oauth.InternalError("Can't recover credential issuer JWKs: %s", err.Error())
	}
	if document.Keys == nil {
		return nil, oauth.InvalidRequestError("No 'keys' parameter found in JWK set")
	}
	result, err := jwk.Parse(data)
	if err != nil {
		return nil, oauth.InternalError("Can't recover credential issuer JWKs: %s", err.Error())
	}
	return result, nil
}

// resolveClientMetadata overrides the default client metadata with the parameters specified by the client.
func (r *OpenIDRelyingParty) resolveClientMetadata(ctx context.Context, given *oauth.ClientMetadata) (*oauth.ClientMetadata, error) {
	var result oauth.ClientMetadata
	if r.defaultMetadata != nil {
		var err error
		if result, err = r.defaultMetadata.DefaultClientMetadata(ctx); err != nil {
			return nil, err
		}
	}
	if given == nil {
		return &result, nil
	}
	merged := map[string]interface{}{}
	if err := remarshal(result, &merged); err != nil {
		return nil, err
	}
	overrides := map[string]interface{}{}
	if err := remarshal(given, &overrides); err != nil {
		return nil, err
	}
	for key, value := range overrides {
		merged[key] = value
	}
	result = oauth.ClientMetadata{}
	if err := remarshal(merged, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *OpenIDRelyingParty) validateClientMetadata(clientMetadata oauth.ClientMetadata) ValidatedClientMetadata {
	result := ValidatedClientMetadata{
		ResponseTypesSupported: clientMetadata.ResponseTypesSupported,
		IDTokenAlg:             []string{},
		VPFormats:              oauth.VpFormatsSupported{},
		AuthorizationEndpoint:  clientMetadata.AuthorizationEndpoint,
	}
	if result.ResponseTypesSupported == nil {
		result.ResponseTypesSupported = []string{}
	}
	if len(r.metadata.IDTokenSigningAlgValuesSupported) > 0 {
		result.IDTokenAlg = intersect(clientMetadata.IDTokenSigningAlgValuesSupported, r.metadata.IDTokenSigningAlgValuesSupported)
	}
	for format, algs := range clientMetadata.VPFormatsSupported {
		supported, ok := r.metadata.VPFormatsSupported[format]
		if !ok {
			continue
		}
		result.VPFormats[format] = oauth.AlgValues{AlgValuesSupported: intersect(algs.AlgValuesSupported, supported.AlgValuesSupported)}
	}
	return result
}

func (r *OpenIDRelyingParty) applyVerifiers(ctx context.Context, params oauth.AuthzRequest, verifiers AuthzRequestVerifiers) error {
	if verifiers.Scope != nil {
		if err := verifiers.Scope.VerifyScope(ctx, params.Scope); err != nil {
			return oauth.InvalidScopeError("Invalid scope specified: %s", err.Error())
		}
	}
	for _, details := range params.AuthorizationDetails {
		if details.Locations != nil && !contains(details.Locations, r.metadata.Issuer) {
			return oauth.InvalidRequestError("Location must contains Issuer client id value")
		}
		if verifiers.AuthorizationDetails != nil {
			if err := verifiers.AuthorizationDetails.VerifyAuthorizationDetails(ctx, details); err != nil {
				return oauth.InvalidRequestError("Invalid authorization details specified: %s", err.Error())
			}
		}
	}
	if verifiers.IssuerState != nil {
		if params.IssuerState == "" {
			return oauth.InvalidRequestError(`An "issuer_state" parameter is required`)
		}
		if err := verifiers.IssuerState.VerifyIssuerState(ctx, params.IssuerState); err != nil {
			return oauth.InvalidRequestError(`Invalid "issuer_state" provided: %s`, err.Error())
		}
	}
	return nil
}

// VerifyIdTokenResponse verifies an ID token sent by a wallet. The token must be signed with an authentication key
// of the DID in its iss claim, and be issued for the relying party. The verifier performs additional checks, it may be nil.
func (r *OpenIDRelyingParty) VerifyIdTokenResponse(ctx context.Context, response oauth.IDTokenResponse, idTokenVerifier IDTokenVerifier) (*VerifiedIdTokenResponse, error) {
	token, err := crypto.ParseUnverified(response.IDToken)
	if err != nil {
		return nil, oauth.InvalidRequestError("%s", err.Error())
	}
	issuer := token.StringClaim(jwt.IssuerKey)
	if issuer == "" {
		return nil, oauth.InvalidRequestError("Id Token must contain iss attribute")
	}
	if token.KeyID() == "" {
		return nil, oauth.InvalidRequestError("No kid parameter found in ID Token")
	}
	if len(r.metadata.IDTokenSigningAlgValuesSupported) > 0 && !contains(r.metadata.IDTokenSigningAlgValuesSupported, token.Algorithm()) {
		return nil, oauth.InvalidRequestError("Unsupported signing alg for ID Token")
	}
	issuerDID, err := resolver.DIDFromURL(issuer)
	if err != nil {
		return nil, oauth.UnauthorizedClientError("Did resolution failed: %s", err.Error())
	}
	document, err := r.didResolver.Resolve(ctx, issuerDID)
	if err != nil {
		return nil, oauth.UnauthorizedClientError("Did resolution failed: %s", err.Error())
	}
	key, err := resolver.ExtractJWK(document, token.KeyID(), resolver.Authentication)
	if err != nil {
		return nil, oauth.InvalidRequestError("%s", err.Error())
	}
	if _, err = crypto.VerifyJWT(response.IDToken, key, r.metadata.Issuer); err != nil {
		return nil, oauth.AccessDeniedError("%s", err.Error())
	}
	if idTokenVerifier != nil {
		if err = idTokenVerifier.VerifyIDToken(ctx, token, document); err != nil {
			return nil, oauth.InvalidRequestError("ID Token verification failed: %s", err.Error())
		}
	}
	return &VerifiedIdTokenResponse{Token: response.IDToken, DIDDocument: document}, nil
}

// VerifyVpTokenResponse verifies the VP token sent by a wallet against the presentation definition, and returns the data
// extracted from its credentials. The presentations must be issued for the relying party.
func (r *OpenIDRelyingParty) VerifyVpTokenResponse(ctx context.Context, response VPTokenResponse, definition pe.PresentationDefinition,
	nonceValidator verifier.NonceValidator, vcSignatureVerification bool) (*VerifiedVpTokenResponse, error) {
	vpResolver := verifier.NewVpResolver(r.didResolver, r.metadata.Issuer, r.credentialValidator, nonceValidator, r.schemaLoader, vcSignatureVerification)
	data, err := vpResolver.VerifyPresentation(ctx, response.VpToken, definition, response.PresentationSubmission)
	if err != nil {
		return nil, err
	}
	return &VerifiedVpTokenResponse{Token: response.VpToken, VpInternalData: *data}, nil
}

// CreateAuthzResponse creates an authorization response for the code response type.
// state must be the state of the authorization request, if it had one.
func (r *OpenIDRelyingParty) CreateAuthzResponse(redirectURI string, code string, state string) AuthorizationResponse {
	return AuthorizationResponse{RedirectURI: redirectURI, Code: code, State: state}
}

// GenerateAccessToken handles a token request. The grant is verified using the verifiers in the options, after which
// an access token for the given audience is signed. If generateIDToken is set, an ID token is issued as well.
func (r *OpenIDRelyingParty) GenerateAccessToken(ctx context.Context, request oauth.TokenRequest, generateIDToken bool, signer TokenSigner,
	audience string, options AccessTokenOptions) (*oauth.TokenResponse, error) {
	if len(r.metadata.GrantTypesSupported) > 0 && !r.metadata.SupportsGrantType(request.GrantType) {
		return nil, oauth.UnsupportedGrantTypeError("Grant type \"%s\" not supported", request.GrantType)
	}
	clientID, err := r.verifyGrant(ctx, request, options)
	if err != nil {
		return nil, err
	}
	cNonce := options.CNonce
	if cNonce == "" {
		cNonce = uuid.NewString()
	}
	tokenExpiration := options.AccessTokenExpiresIn
	if tokenExpiration == 0 {
		tokenExpiration = oauth.AccessTokenExpiration
	}
	cNonceExpiration := options.CNonceExpiresIn
	if cNonceExpiration == 0 {
		cNonceExpiration = oauth.CNonceExpiration
	}
	expiration := nowFunc().Add(tokenExpiration).Unix()
	accessToken, err := signer.SignToken(ctx, map[string]interface{}{
		jwt.AudienceKey:   audience,
		jwt.IssuerKey:     r.metadata.Issuer,
		jwt.SubjectKey:    clientID,
		jwt.ExpirationKey: expiration,
		oauth.NonceParam:  cNonce,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to sign access token: %w", err)
	}
	result := &oauth.TokenResponse{
		AccessToken:     accessToken,
		TokenType:       "bearer",
		ExpiresIn:       int(tokenExpiration.Seconds()),
		CNonce:          cNonce,
		CNonceExpiresIn: int(cNonceExpiration.Seconds()),
	}
	if generateIDToken {
		result.IDToken, err = signer.SignToken(ctx, map[string]interface{}{
			jwt.IssuerKey:     r.metadata.Issuer,
			jwt.SubjectKey:    clientID,
			jwt.ExpirationKey: expiration,
		}, r.metadata.IDTokenSigningAlgValuesSupported)
		if err != nil {
			return nil, fmt.Errorf("unable to sign ID token: %w", err)
		}
	}
	accessTokensIssued.WithLabelValues(request.GrantType).Inc()
	log.Logger().
		WithField(core.LogFieldGrantType, request.GrantType).
		WithField(core.LogFieldClientID, clientID).
		Info("Access token issued")
	return result, nil
}

// verifyGrant verifies the grant of the token request and returns the client the token is issued to.
func (r *OpenIDRelyingParty) verifyGrant(ctx context.Context, request oauth.TokenRequest, options AccessTokenOptions) (string, error) {
	switch request.GrantType {
	case oauth.AuthorizationCodeGrantType:
		if request.Code == "" {
			return "", oauth.InvalidGrantError("Grant type \"%s\" invalid parameters", request.GrantType)
		}
		if options.AuthorizationCode == nil {
			return "", oauth.InsufficientParameters("No verification callback was provided for \"%s\" grant type", request.GrantType)
		}
		if err := options.AuthorizationCode.VerifyAuthorizationCode(ctx, request.ClientID, request.Code); err != nil {
			return "", oauth.InvalidGrantError("Invalid \"%s\" provided: %s", request.GrantType, err.Error())
		}
		if request.ClientAssertionType == oauth.ClientAssertionTypeJWTBearer {
			return request.ClientID, r.verifyClientAssertion(ctx, request, options.ClientAssertionKeyRetriever)
		}
		if options.CodeVerifier == nil {
			return "", oauth.InsufficientParameters("No \"code_verifier\" verification callback was provided.")
		}
		if err := options.CodeVerifier.VerifyCodeVerifier(ctx, request.ClientID, request.CodeVerifier); err != nil {
			return "", oauth.InvalidGrantError("Invalid code_verifier provided: %s", err.Error())
		}
		return request.ClientID, nil
	case oauth.PreAuthorizedCodeGrantType:
		if request.PreAuthorizedCode == "" {
			return "", oauth.InvalidGrantError("Grant type \"%s\" invalid parameters", request.GrantType)
		}
		if options.PreAuthorizedCode == nil {
			return "", oauth.InsufficientParameters("No verification callback was provided for \"%s\" grant type", request.GrantType)
		}
		clientID, err := options.PreAuthorizedCode.VerifyPreAuthorizedCode(ctx, request.ClientID, request.PreAuthorizedCode, request.UserPin)
		if err != nil {
			return "", oauth.InvalidGrantError("Invalid \"%s\" provided: %s", request.GrantType, err.Error())
		}
		if clientID == "" {
			return "", oauth.InvalidGrantError("Invalid \"%s\" provided.", request.GrantType)
		}
		return clientID, nil
	case oauth.VpTokenGrantType:
		if request.VpToken == "" {
			return "", oauth.InsufficientParameters("Grant type \"vp_token\" requires the \"vp_token\" parameter")
		}
		return "", oauth.InternalError("Unimplemented")
	}
	return "", oauth.UnsupportedGrantTypeError("Grant type \"%s\" not supported", request.GrantType)
}

func (r *OpenIDRelyingParty) verifyClientAssertion(ctx context.Context, request oauth.TokenRequest, keyRetriever ClientAssertionKeyRetriever) error {
	if request.ClientAssertion == "" {
		return oauth.InvalidRequestError("No \"client_assertion\" was provided")
	}
	if keyRetriever == nil {
		return oauth.InsufficientParameters("No client assertion key retriever was provided")
	}
	key, err := keyRetriever.ClientAssertionKey(ctx, request.ClientID)
	if err != nil {
		return err
	}
	if _, err = crypto.VerifyJWT(request.ClientAssertion, key, r.metadata.Issuer); err != nil {
		return oauth.InvalidTokenError("Invalid client assertion: %s", err.Error())
	}
	return nil
}

// remarshal converts between JSON compatible representations, e.g. a map of JWT claims to a struct.
func remarshal(source interface{}, target interface{}) error {
	data, err := json.Marshal(source)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func intersect(values []string, allowed []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if contains(allowed, value) {
			result = append(result, value)
		}
	}
	return result
}

func contains(values []string, value string) bool {
	for _, curr := range values {
		if curr == value {
			return true
		}
	}
	return false
}
