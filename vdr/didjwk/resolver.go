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

package didjwk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
)

// MethodName is the name of this DID method.
const MethodName = "jwk"

var _ resolver.DIDResolver = (*Resolver)(nil)

// Resolver is a DID resolver for the did:jwk method.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve implements the DIDResolver interface.
func (w Resolver) Resolve(_ context.Context, id did.DID) (*did.Document, error) {
	if id.Method != MethodName {
		return nil, fmt.Errorf("unsupported DID method: %s", id.Method)
	}

	encodedJWK, err := base64.RawURLEncoding.DecodeString(id.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 (%v): %w", id.ID, err)
	}
	key, err := jwk.ParseKey(encodedJWK)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWK: %w", err)
	}
	if isPrivateKey(key) {
		return nil, fmt.Errorf("private keys are forbidden in DID JWK: %s", key.KeyType())
	}
	publicRawKey, err := jwk.PublicRawKeyOf(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get PublicRawKeyOf(key): %w", err)
	}

	// See https://github.com/quartzjer/did-jwk/blob/main/spec.md#to-create-the-did-url
	keyID, err := did.ParseDIDURL(id.String() + "#0")
	if err != nil {
		return nil, err
	}
	verificationMethod, err := did.NewVerificationMethod(*keyID, ssi.JsonWebKey2020, id, publicRawKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification method: %w", err)
	}
	document := did.Document{
		Context: []interface{}{did.DIDContextV1URI()},
		ID:      id,
	}
	document.AddAssertionMethod(verificationMethod)
	document.AddAuthenticationMethod(verificationMethod)
	document.AddCapabilityInvocation(verificationMethod)
	document.AddCapabilityDelegation(verificationMethod)
	return &document, nil
}

// Create derives the did:jwk of the given key. Only the public part of the key is encoded.
// It returns the DID and the ID of its (only) verification method.
func Create(key jwk.Key) (did.DID, string, error) {
	publicKey, err := jwk.PublicKeyOf(key)
	if err != nil {
		return did.DID{}, "", err
	}
	data, err := json.Marshal(publicKey)
	if err != nil {
		return did.DID{}, "", err
	}
	id, err := did.ParseDID("did:jwk:" + base64.RawURLEncoding.EncodeToString(data))
	if err != nil {
		return did.DID{}, "", err
	}
	return *id, id.String() + "#0", nil
}

func isPrivateKey(key jwk.Key) bool {
	switch key.(type) {
	case jwk.ECDSAPrivateKey, jwk.RSAPrivateKey, jwk.OKPPrivateKey, jwk.SymmetricKey:
		return true
	}
	return false
}
