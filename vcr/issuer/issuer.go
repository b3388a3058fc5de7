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

// Package issuer implements an OpenID4VCI credential issuer for W3C Verifiable Credentials.
package issuer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
	"github.com/nuts-foundation/openid4vc/vcr/log"
	"github.com/nuts-foundation/openid4vc/vcr/proof"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
	"github.com/prometheus/client_golang/prometheus"
)

var nowFunc = time.Now

var (
	credentialsIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: core.MetricsNamespace,
		Name:      "credentials_issued_total",
		Help:      "Number of issued credentials, by format and data model.",
	}, []string{"format", "data_model"})
	credentialsDeferred = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: core.MetricsNamespace,
		Name:      "credentials_deferred_total",
		Help:      "Number of credential requests answered with an acceptance token.",
	})
)

// W3CVcIssuer issues W3C Verifiable Credentials (data model v1.1 or v2.0) to wallets, following OpenID4VCI.
type W3CVcIssuer struct {
	metadata     oauth.IssuerMetadata
	didResolver  resolver.DIDResolver
	issuerDID    string
	capabilities Capabilities
}

// NewW3CVcIssuer creates a W3CVcIssuer. The metadata determines which combinations of credential types and format are issued,
// and its credential_issuer is the audience of access tokens and proofs.
func NewW3CVcIssuer(metadata oauth.IssuerMetadata, didResolver resolver.DIDResolver, issuerDID string, capabilities Capabilities) *W3CVcIssuer {
	if err := core.RegisterCollectors(nil, credentialsIssued, credentialsDeferred); err != nil {
		log.Logger().WithError(err).Warn("Unable to register issuer metrics")
	}
	return &W3CVcIssuer{
		metadata:     metadata,
		didResolver:  didResolver,
		issuerDID:    issuerDID,
		capabilities: capabilities,
	}
}

// VerifyAccessToken verifies the signature, expiration and audience (the credential issuer) of the access token.
// If given, the verifier performs additional checks on the token.
func (i *W3CVcIssuer) VerifyAccessToken(ctx context.Context, token string, authorizationServerKey jwk.Key, verifier AccessTokenVerifier) (*crypto.Token, error) {
	result, err := crypto.VerifyJWT(token, authorizationServerKey, i.metadata.CredentialIssuer)
	if err != nil {
		return nil, oauth.InvalidTokenError("%s", err.Error())
	}
	if verifier != nil {
		if err = verifier.VerifyAccessToken(ctx, result.Header, result.Claims); err != nil {
			return nil, oauth.InvalidTokenError("Invalid access token provided: %s", err.Error())
		}
	}
	return result, nil
}

// GenerateCredentialResponse handles an OpenID4VCI credential request: it verifies the access token and the proof of possession,
// then issues the credential (or returns an acceptance token when the credential data isn't available yet).
func (i *W3CVcIssuer) GenerateCredentialResponse(ctx context.Context, accessToken AccessToken, request oauth.CredentialRequest,
	dataModel credential.DataModel, options Options) (*oauth.CredentialResponse, error) {
	token := accessToken.verified
	if token == nil {
		if options.TokenVerification == nil {
			return nil, oauth.InsufficientParameters("\"tokenVerification\" optional parameter must be set when the access token is in string format")
		}
		var err error
		token, err = i.VerifyAccessToken(ctx, accessToken.raw, options.TokenVerification.AuthorizationServerKey, options.TokenVerification.Verifier)
		if err != nil {
			return nil, err
		}
	}
	if err := i.checkCredentialTypesAndFormat(request.Types, request.Format); err != nil {
		return nil, err
	}
	controlProof, err := proof.FromJSON(request.Proof)
	if err != nil {
		return nil, err
	}
	proofIdentifier, err := controlProof.AssociatedIdentifier()
	if err != nil {
		return nil, err
	}
	tokenSubject := token.StringClaim("sub")
	if !resolver.SameDID(proofIdentifier, tokenSubject) {
		return nil, oauth.InvalidTokenError("Access Token was issued for a different identifier that the one that sign the proof")
	}
	cNonce, err := i.capabilities.NonceRetriever.RetrieveNonce(ctx, tokenSubject)
	if err != nil {
		return nil, err
	}
	if err = controlProof.Verify(ctx, cNonce, i.metadata.CredentialIssuer, i.didResolver); err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldDID, proofIdentifier).
			Debug("Credential request rejected: invalid proof")
		return nil, err
	}
	subject := proofIdentifier
	if i.capabilities.SubjectResolver != nil {
		if subject, err = i.capabilities.SubjectResolver.ResolveSubject(ctx, tokenSubject, proofIdentifier); err != nil {
			return nil, err
		}
	}
	return i.issue(ctx, subject, request.Types, credential.FormatID(request.Format), dataModel, options)
}

// GenerateVcDirectMode issues a credential to the given subject without an access token or proof, e.g. when the issuer
// and the wallet are operated by the same party.
func (i *W3CVcIssuer) GenerateVcDirectMode(ctx context.Context, subject string, dataModel credential.DataModel, types []string,
	format credential.FormatID, options Options) (*oauth.CredentialResponse, error) {
	if err := i.checkCredentialTypesAndFormat(types, string(format)); err != nil {
		return nil, err
	}
	return i.issue(ctx, subject, types, format, dataModel, options)
}

// ExchangeAcceptanceTokenForVc handles a deferred credential request. If the credential is still not ready, the (new) deferred code
// is returned as acceptance token. Otherwise, the credential is issued using the data returned by the exchanger.
func (i *W3CVcIssuer) ExchangeAcceptanceTokenForVc(ctx context.Context, acceptanceToken string, exchanger DeferredExchanger,
	dataModel credential.DataModel, options Options) (*oauth.CredentialResponse, error) {
	result, err := exchanger.ExchangeAcceptanceToken(ctx, acceptanceToken)
	if err != nil {
		return nil, oauth.InvalidTokenError("Invalid acceptance token: %s", err.Error())
	}
	if result == nil {
		return nil, oauth.InternalError("No credential data or deferred code received")
	}
	if result.DeferredCode != "" {
		credentialsDeferred.Inc()
		return &oauth.CredentialResponse{AcceptanceToken: result.DeferredCode}, nil
	}
	if result.Data == nil {
		return nil, oauth.InternalError("No credential data or deferred code received")
	}
	subject, _ := result.Data["id"].(string)
	return i.generateCredential(ctx, subject, result.Types, result.Format, result.CredentialDataOrDeferred, dataModel, options)
}

func (i *W3CVcIssuer) issue(ctx context.Context, subject string, types []string, format credential.FormatID, dataModel credential.DataModel, options Options) (*oauth.CredentialResponse, error) {
	data, err := i.capabilities.DataRetriever.CredentialData(ctx, types, subject)
	if err != nil {
		return nil, err
	}
	switch {
	case data == nil:
		break
	case data.DeferredCode != "":
		credentialsDeferred.Inc()
		log.Logger().
			WithField(core.LogFieldCredentialType, types).
			Info("Credential issuance deferred")
		return &oauth.CredentialResponse{AcceptanceToken: data.DeferredCode}, nil
	case data.Data != nil:
		return i.generateCredential(ctx, subject, types, format, *data, dataModel, options)
	}
	return nil, oauth.InternalError("No credential data or deferred code received")
}

func (i *W3CVcIssuer) generateCredential(ctx context.Context, subject string, types []string, format credential.FormatID,
	data CredentialDataOrDeferred, dataModel credential.DataModel, options Options) (*oauth.CredentialResponse, error) {
	formatter, err := credential.FormatterFor(format, dataModel)
	if err != nil {
		return nil, err
	}
	schemas, err := i.capabilities.SchemaRetriever.CredentialSchemas(ctx, types)
	if err != nil {
		return nil, err
	}
	vc, err := i.buildCredential(ctx, subject, types, schemas, data, dataModel, options)
	if err != nil {
		return nil, err
	}
	payload, err := formatter.Format(*vc)
	if err != nil {
		return nil, err
	}
	signed, err := i.capabilities.Signer.SignCredential(ctx, format, payload)
	if err != nil {
		return nil, fmt.Errorf("unable to sign credential: %w", err)
	}
	credentialsIssued.WithLabelValues(string(format), dataModel.String()).Inc()
	log.Logger().
		WithField(core.LogFieldCredentialID, vc.ID).
		WithField(core.LogFieldCredentialType, types).
		WithField(core.LogFieldCredentialFormat, format).
		Info("Credential issued")
	response := &oauth.CredentialResponse{
		Format:          string(format),
		Credential:      signed,
		CNonce:          options.CNonce,
		CNonceExpiresIn: options.CNonceExpiresIn,
	}
	if response.CNonce == "" {
		response.CNonce = uuid.NewString()
	}
	if response.CNonceExpiresIn == 0 {
		response.CNonceExpiresIn = int(oauth.CNonceExpiration.Seconds())
	}
	return response, nil
}

func (i *W3CVcIssuer) buildCredential(ctx context.Context, subject string, types []string, schemas credential.Schemas,
	data CredentialDataOrDeferred, dataModel credential.DataModel, options Options) (*credential.VerifiableCredential, error) {
	validity, err := credentialTimestamps(data)
	if err != nil {
		return nil, err
	}
	id := "urn:uuid:" + uuid.NewString()
	credentialSubject := map[string]interface{}{}
	for key, value := range data.Data {
		credentialSubject[key] = value
	}
	credentialSubject["id"] = subject
	result := credential.VerifiableCredential{
		Context:           dataModel.Contexts(),
		ID:                id,
		Type:              types,
		Issuer:            i.issuerDID,
		CredentialSubject: credentialSubject,
		CredentialSchema:  schemas,
		ValidFrom:         core.FormatTime(validity.validFrom),
	}
	switch dataModel {
	case credential.DataModelV1:
		result.IssuanceDate = core.FormatTime(validity.issuanceDate)
		result.Issued = result.IssuanceDate
		if validity.expirationDate != nil {
			result.ExpirationDate = core.FormatTime(*validity.expirationDate)
		}
	case credential.DataModelV2:
		if validity.expirationDate != nil {
			result.ValidUntil = core.FormatTime(*validity.expirationDate)
		}
	default:
		return nil, oauth.InvalidDataProvided("unsupported data model: %s", dataModel)
	}
	if options.StatusProvider != nil {
		if result.CredentialStatus, err = options.StatusProvider.CredentialStatus(ctx, types, id, subject); err != nil {
			return nil, err
		}
	}
	if options.TermsOfUse != nil {
		if result.TermsOfUse, err = options.TermsOfUse.TermsOfUse(ctx, types, subject); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

type timestamps struct {
	issuanceDate   time.Time
	validFrom      time.Time
	expirationDate *time.Time
}

// credentialTimestamps determines the validity of a credential. The ordering issuanceDate <= validFrom <= expirationDate must hold.
func credentialTimestamps(data CredentialDataOrDeferred) (*timestamps, error) {
	if data.ValidUntil != "" && data.ExpiresInSeconds != 0 {
		return nil, oauth.InvalidDataProvided("\"expiresInSeconds\" and \"validUntil\" can't be defined at the same time")
	}
	result := timestamps{issuanceDate: nowFunc().UTC()}
	var err error
	if data.IssuanceDate != "" {
		if result.issuanceDate, err = core.ParseTime(data.IssuanceDate); err != nil {
			return nil, oauth.InvalidDataProvided("Invalid specified date for \"iss\" parameter")
		}
	}
	result.validFrom = result.issuanceDate
	if data.ValidFrom != "" {
		if result.validFrom, err = core.ParseTime(data.ValidFrom); err != nil {
			return nil, oauth.InvalidDataProvided("Invalid specified date for \"nbf\" parameter")
		}
		if result.validFrom.Before(result.issuanceDate) {
			return nil, oauth.InvalidDataProvided("\"validFrom\" can not be before \"issuanceDate\"")
		}
	}
	var expiration time.Time
	switch {
	case data.ValidUntil != "":
		if expiration, err = core.ParseTime(data.ValidUntil); err != nil {
			return nil, oauth.InvalidDataProvided("Invalid specified date for \"expirationDate\" parameter")
		}
	case data.ExpiresInSeconds != 0:
		expiration = result.issuanceDate.Add(time.Duration(data.ExpiresInSeconds) * time.Second)
	default:
		return &result, nil
	}
	if expiration.Before(result.validFrom) {
		return nil, oauth.InvalidDataProvided("\"expirationDate\" can not be before \"validFrom\"")
	}
	result.expirationDate = &expiration
	return &result, nil
}

// checkCredentialTypesAndFormat checks whether the issuer supports the requested types in the given format:
// the types must be a subset of the types of a supported credential with the same format.
func (i *W3CVcIssuer) checkCredentialTypesAndFormat(types []string, format string) error {
	for _, supported := range i.metadata.CredentialsSupported {
		if supported.Format == format && isSubset(types, supported.Types) {
			return nil
		}
	}
	return oauth.InvalidCredentialRequestError("Unsupported combination of credential types and format")
}

func isSubset(values []string, set []string) bool {
	for _, value := range values {
		found := false
		for _, curr := range set {
			if curr == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
