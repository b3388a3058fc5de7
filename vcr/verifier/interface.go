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

package verifier

import (
	"context"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
)

// CredentialValidator performs the checks on a presented credential that depend on the use case,
// e.g. whether the issuer is trusted for the credential type, or whether the credential is revoked.
type CredentialValidator interface {
	// ValidateCredential returns an error if the credential must not be accepted. The message of the error is returned to the client.
	// issuerKey is the key that signed the credential, it's nil when credential signatures aren't verified.
	ValidateCredential(ctx context.Context, vc credential.VerifiableCredential, dataModel credential.DataModel, issuerKey jwk.Key) error
}

// NonceValidator checks the nonce of a Verifiable Presentation, which the verifier handed out to the holder before.
type NonceValidator interface {
	// ValidateNonce returns an error if the nonce is unknown or not issued to the holder.
	ValidateNonce(ctx context.Context, holderDIDURL string, nonce string) error
}

// ExtractedData contains the result of a successful presentation verification.
type ExtractedData struct {
	// ClaimsData maps the ID of each input descriptor to the claims resolved for it.
	ClaimsData map[string]map[string]interface{}
	// HolderDID is the DID of the holder that signed the presentation.
	HolderDID string
}
