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

package didkey

import (
	"bytes"
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multicodec"
	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
)

// MethodName is the name of this DID method.
const MethodName = "key"

// jwkJcsPub is the multicodec code for a JCS canonicalized JWK (jwk_jcs-pub).
const jwkJcsPub multicodec.Code = 0xeb51

var _ resolver.DIDResolver = &Resolver{}

var errInvalidPublicKeyLength = errors.New("invalid did:key: invalid public key length")

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolver resolves did:key DIDs. The DID document is derived from the DID itself.
type Resolver struct {
}

func (r Resolver) Resolve(_ context.Context, id did.DID) (*did.Document, error) {
	if id.Method != MethodName {
		return nil, fmt.Errorf("unsupported DID method: %s", id.Method)
	}
	key, err := decodePublicKey(id.ID)
	if err != nil {
		return nil, err
	}

	document := did.Document{
		Context: []interface{}{
			ssi.MustParseURI("https://w3c-ccg.github.io/lds-jws2020/contexts/lds-jws2020-v1.json"),
			did.DIDContextV1URI(),
		},
		ID: id,
	}
	keyID, err := did.ParseDIDURL(id.String() + "#" + id.ID)
	if err != nil {
		return nil, err
	}
	vm, err := did.NewVerificationMethod(*keyID, ssi.JsonWebKey2020, id, key)
	if err != nil {
		return nil, err
	}
	document.AddAssertionMethod(vm)
	document.AddAuthenticationMethod(vm)
	document.AddCapabilityDelegation(vm)
	document.AddCapabilityInvocation(vm)
	return &document, nil
}

func decodePublicKey(encodedKey string) (crypto.PublicKey, error) {
	if len(encodedKey) == 0 || encodedKey[0] != 'z' {
		return nil, errors.New("did:key does not start with 'z'")
	}
	mcBytes, err := base58.Decode(encodedKey[1:])
	if err != nil {
		return nil, fmt.Errorf("did:key: invalid base58btc: %w", err)
	}
	reader := bytes.NewReader(mcBytes)
	keyType, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, fmt.Errorf("did:key: invalid multicodec value: %w", err)
	}
	// See https://w3c-ccg.github.io/did-method-key/#signature-method-creation-algorithm
	mcBytes, _ = io.ReadAll(reader)
	keyLength := len(mcBytes)

	switch multicodec.Code(keyType) {
	case multicodec.Ed25519Pub:
		if keyLength != ed25519.PublicKeySize {
			return nil, errInvalidPublicKeyLength
		}
		return ed25519.PublicKey(mcBytes), nil
	case multicodec.P256Pub:
		return unmarshalEC(elliptic.P256(), 33, mcBytes)
	case multicodec.P384Pub:
		return unmarshalEC(elliptic.P384(), 49, mcBytes)
	case multicodec.RsaPub:
		key, err := x509.ParsePKCS1PublicKey(mcBytes)
		if err != nil {
			return nil, fmt.Errorf("did:key: invalid PKCS#1 encoded RSA public key: %w", err)
		}
		return key, nil
	case jwkJcsPub:
		key, err := jwk.ParseKey(mcBytes)
		if err != nil {
			return nil, fmt.Errorf("did:key: invalid jwk_jcs-pub key: %w", err)
		}
		var raw interface{}
		if err = key.Raw(&raw); err != nil {
			return nil, fmt.Errorf("did:key: invalid jwk_jcs-pub key: %w", err)
		}
		if _, private := raw.(crypto.Signer); private {
			return nil, errors.New("did:key: jwk_jcs-pub must not contain a private key")
		}
		return raw, nil
	case multicodec.Secp256k1Pub:
		return nil, errors.New("did:key: secp256k1 public keys are not supported")
	case multicodec.Bls12_381G2Pub:
		return nil, errors.New("did:key: bls12381 public keys are not supported")
	default:
		return nil, fmt.Errorf("did:key: unsupported public key type: 0x%x", keyType)
	}
}

func unmarshalEC(curve elliptic.Curve, expectedLen int, pubKeyBytes []byte) (*ecdsa.PublicKey, error) {
	if len(pubKeyBytes) != expectedLen {
		return nil, errInvalidPublicKeyLength
	}
	x, y := elliptic.UnmarshalCompressed(curve, pubKeyBytes)
	if x == nil {
		return nil, errors.New("did:key: invalid compressed EC point")
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

// Create derives the did:key of the given key. Ed25519 and P-256 keys use their native multicodec,
// other key types are encoded as jwk_jcs-pub.
// It returns the DID and the ID of its verification method.
func Create(key jwk.Key) (did.DID, string, error) {
	publicKey, err := jwk.PublicKeyOf(key)
	if err != nil {
		return did.DID{}, "", err
	}
	var raw interface{}
	if err = publicKey.Raw(&raw); err != nil {
		return did.DID{}, "", err
	}
	var mcBytes []byte
	if k, ok := raw.(ed25519.PublicKey); ok {
		mcBytes = append(binary.AppendUvarint(nil, uint64(multicodec.Ed25519Pub)), k...)
	} else if k, ok := raw.(*ecdsa.PublicKey); ok && k.Curve == elliptic.P256() {
		mcBytes = append(binary.AppendUvarint(nil, uint64(multicodec.P256Pub)), elliptic.MarshalCompressed(k.Curve, k.X, k.Y)...)
	} else {
		canonical, err := canonicalJWK(publicKey)
		if err != nil {
			return did.DID{}, "", err
		}
		mcBytes = append(binary.AppendUvarint(nil, uint64(jwkJcsPub)), canonical...)
	}
	encoded := "z" + base58.Encode(mcBytes)
	id, err := did.ParseDID("did:key:" + encoded)
	if err != nil {
		return did.DID{}, "", err
	}
	return *id, id.String() + "#" + encoded, nil
}

// canonicalJWK renders the JWK members in lexicographic order without whitespace.
func canonicalJWK(key jwk.Key) ([]byte, error) {
	asJSON, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	members := map[string]interface{}{}
	if err = json.Unmarshal(asJSON, &members); err != nil {
		return nil, err
	}
	return json.Marshal(members)
}
