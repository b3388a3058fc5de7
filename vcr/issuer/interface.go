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
	"context"

	"github.com/nuts-foundation/openid4vc/vcr/credential"
)

// Capabilities groups the collaborators a W3CVcIssuer needs for every issuance.
type Capabilities struct {
	Signer          CredentialSigner
	NonceRetriever  NonceRetriever
	SchemaRetriever SchemaRetriever
	DataRetriever   DataRetriever
	// SubjectResolver is optional. Without it, credentials are issued to the identifier that signed the proof.
	SubjectResolver SubjectResolver
}

// CredentialSigner signs the payload of a credential in the given format (e.g. a JWT VC for jwt_vc_json).
type CredentialSigner interface {
	SignCredential(ctx context.Context, format credential.FormatID, payload map[string]interface{}) (interface{}, error)
}

// NonceRetriever returns the c_nonce that was handed out to the client (the subject of the access token).
type NonceRetriever interface {
	RetrieveNonce(ctx context.Context, clientID string) (string, error)
}

// SchemaRetriever returns the credentialSchema to include in credentials of the given types.
type SchemaRetriever interface {
	CredentialSchemas(ctx context.Context, types []string) (credential.Schemas, error)
}

// DataRetriever returns the subject data of a credential, or a deferred code if the credential can't be issued yet.
type DataRetriever interface {
	CredentialData(ctx context.Context, types []string, subject string) (*CredentialDataOrDeferred, error)
}

// SubjectResolver determines the credential subject from the subject of the access token and the identifier that signed the proof.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, tokenSubject string, proofIdentifier string) (string, error)
}

// AccessTokenVerifier performs additional checks on the header and claims of a verified access token.
// An error means the token is rejected, its message is returned to the client.
type AccessTokenVerifier interface {
	VerifyAccessToken(ctx context.Context, header map[string]interface{}, claims map[string]interface{}) error
}

// StatusProvider returns the credentialStatus of a credential being issued.
type StatusProvider interface {
	CredentialStatus(ctx context.Context, types []string, credentialID string, subject string) (interface{}, error)
}

// TermsOfUseProvider returns the termsOfUse of a credential being issued.
type TermsOfUseProvider interface {
	TermsOfUse(ctx context.Context, types []string, subject string) (interface{}, error)
}

// DeferredExchanger exchanges an acceptance token (a deferred code) for the data of the credential.
// An error means the acceptance token is invalid.
type DeferredExchanger interface {
	ExchangeAcceptanceToken(ctx context.Context, acceptanceToken string) (*DeferredResult, error)
}
