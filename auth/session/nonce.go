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

// Package session implements the stateful collaborators of the issuer, verifier and relying party
// (nonces, authorization codes, pre-authorized codes and deferred credentials) on top of a storage.SessionDatabase.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/auth/relyingparty"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/storage"
	"github.com/nuts-foundation/openid4vc/vcr/issuer"
	"github.com/nuts-foundation/openid4vc/vcr/verifier"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
)

var _ issuer.NonceRetriever = (*NonceStore)(nil)
var _ verifier.NonceValidator = (*NonceStore)(nil)
var _ relyingparty.IDTokenVerifier = (*NonceStore)(nil)

// ErrUnknownNonce is returned when a nonce was never issued, has expired or was already used.
var ErrUnknownNonce = errors.New("unknown or expired nonce")

// ErrNonceNotIssuedToHolder is returned when a nonce is presented by another party than it was issued to.
var ErrNonceNotIssuedToHolder = errors.New("nonce was not issued to the holder")

// NonceStore keeps the c_nonces handed out to clients in token responses, and the nonces of authorization requests
// sent to wallets. The latter can be used only once.
type NonceStore struct {
	cNonces       storage.SessionStore
	requestNonces storage.SessionStore
}

// NewNonceStore creates a NonceStore on the given session database.
func NewNonceStore(db storage.SessionDatabase) *NonceStore {
	return &NonceStore{
		cNonces:       db.GetStore(oauth.CNonceExpiration, "openid4vci", "c_nonce"),
		requestNonces: db.GetStore(oauth.RequestExpiration, "openid4vp", "nonce"),
	}
}

// IssueCNonce generates a c_nonce for the client, replacing the previous one.
func (n *NonceStore) IssueCNonce(clientID string) (string, error) {
	nonce := crypto.GenerateNonce()
	if err := n.cNonces.Put(clientID, nonce); err != nil {
		return "", fmt.Errorf("unable to store c_nonce: %w", err)
	}
	return nonce, nil
}

// RetrieveNonce returns the c_nonce that was issued to the client.
func (n *NonceStore) RetrieveNonce(_ context.Context, clientID string) (string, error) {
	var nonce string
	if err := n.cNonces.Get(clientID, &nonce); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", core.WrapError(ErrUnknownNonce, err)
		}
		return "", err
	}
	return nonce, nil
}

// IssueRequestNonce generates a nonce for an authorization request sent to the given holder (DID).
// The holder may be empty if it isn't known yet, the nonce can then be used by any holder.
func (n *NonceStore) IssueRequestNonce(holderDID string) (string, error) {
	nonce := crypto.GenerateNonce()
	if err := n.requestNonces.Put(nonce, holderDID); err != nil {
		return "", fmt.Errorf("unable to store nonce: %w", err)
	}
	return nonce, nil
}

// ValidateNonce consumes the nonce of a presentation, which must have been issued to the holder that signed it.
func (n *NonceStore) ValidateNonce(_ context.Context, holderDIDURL string, nonce string) error {
	var holderDID string
	if err := n.requestNonces.GetAndDelete(nonce, &holderDID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.WrapError(ErrUnknownNonce, err)
		}
		return err
	}
	if holderDID != "" && !resolver.SameDID(holderDID, holderDIDURL) {
		return ErrNonceNotIssuedToHolder
	}
	return nil
}

// VerifyIDToken consumes the nonce of an ID token, which must have been issued to the DID that signed it.
func (n *NonceStore) VerifyIDToken(ctx context.Context, token *crypto.Token, document *did.Document) error {
	nonce := token.StringClaim(oauth.NonceParam)
	if nonce == "" {
		return errors.New("ID Token does not contain a nonce")
	}
	return n.ValidateNonce(ctx, document.ID.String(), nonce)
}
