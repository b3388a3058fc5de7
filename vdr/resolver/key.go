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

package resolver

import (
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/crypto"
)

// ErrKeyNotFound is returned when a particular key or type of key is not found.
var ErrKeyNotFound = errors.New("key not found in DID document")

// keyError describes why a key could not be extracted from a DID document. It matches ErrKeyNotFound.
type keyError struct {
	msg string
}

func (k keyError) Error() string {
	return k.msg
}

func (k keyError) Is(other error) bool {
	return other == ErrKeyNotFound
}

// ExtractJWK returns the public key of the verification method with the given ID, as JWK.
// The verification method must be referenced by the given verification relationship,
// and it must express its public key as JWK. A returned error matches ErrKeyNotFound.
func ExtractJWK(document *did.Document, keyID string, relationType RelationType) (jwk.Key, error) {
	relationships, err := resolveRelationships(document, relationType)
	if err != nil {
		return nil, err
	}
	if !containsKeyID(relationships, keyID) {
		return nil, keyError{msg: fmt.Sprintf("The kid specified is not the identifier of an %s relationship", relationType)}
	}
	if len(document.VerificationMethod) == 0 {
		return nil, keyError{msg: fmt.Sprintf("No verification methods defined in DidDocumet for did %s", document.ID)}
	}
	var verificationMethod *did.VerificationMethod
	for _, curr := range document.VerificationMethod {
		if curr.ID.String() == keyID {
			verificationMethod = curr
			break
		}
	}
	if verificationMethod == nil {
		return nil, keyError{msg: fmt.Sprintf("There is no verification method with id %s", keyID)}
	}
	if len(verificationMethod.PublicKeyJwk) == 0 {
		return nil, keyError{msg: "The verificationMethod must contain public key with JWK format"}
	}
	key, err := crypto.JWKFromMap(verificationMethod.PublicKeyJwk)
	if err != nil {
		return nil, keyError{msg: fmt.Sprintf("The verificationMethod contains an invalid JWK: %s", err)}
	}
	return key, nil
}

func containsKeyID(relationships did.VerificationRelationships, keyID string) bool {
	for _, rel := range relationships {
		if rel.VerificationMethod != nil && rel.ID.String() == keyID {
			return true
		}
	}
	return false
}

func resolveRelationships(doc *did.Document, relationType RelationType) (relationships did.VerificationRelationships, err error) {
	switch relationType {
	case Authentication:
		return doc.Authentication, nil
	case AssertionMethod:
		return doc.AssertionMethod, nil
	case KeyAgreement:
		return doc.KeyAgreement, nil
	case CapabilityInvocation:
		return doc.CapabilityInvocation, nil
	case CapabilityDelegation:
		return doc.CapabilityDelegation, nil
	default:
		return nil, fmt.Errorf("unable to locate RelationType %v", relationType)
	}
}

// RelationType is the type that contains the different possible relationships between a DID Document and a VerificationMethod
// They are defined in the DID spec: https://www.w3.org/TR/did-core/#verification-relationships
type RelationType uint

const (
	Authentication       RelationType = iota
	AssertionMethod      RelationType = iota
	KeyAgreement         RelationType = iota
	CapabilityInvocation RelationType = iota
	CapabilityDelegation RelationType = iota
)

// String returns the name of the relationship as used in error messages.
func (r RelationType) String() string {
	switch r {
	case Authentication:
		return "authentification"
	case AssertionMethod:
		return "assertionMethod"
	case KeyAgreement:
		return "keyAgreement"
	case CapabilityInvocation:
		return "capabilityInvocation"
	case CapabilityDelegation:
		return "capabilityDelegation"
	}
	return fmt.Sprintf("RelationType(%d)", uint(r))
}
