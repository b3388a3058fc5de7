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

package test

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/crypto"
	cryptoTest "github.com/nuts-foundation/openid4vc/crypto/test"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
	"github.com/nuts-foundation/openid4vc/vdr/didjwk"
)

// Party is a DID controller with a single P-256 key, identified by a did:jwk. It can act as wallet, issuer or verifier in tests.
type Party struct {
	Key   jwk.Key
	DID   did.DID
	KeyID string
}

// NewParty generates a key and derives its did:jwk.
func NewParty() Party {
	key := cryptoTest.GenerateJWK()
	id, keyID, err := didjwk.Create(key)
	if err != nil {
		panic(err)
	}
	return Party{Key: key, DID: id, KeyID: keyID}
}

// Sign signs the claims as JWT with kid set to the party's key ID. Additional headers (e.g. typ) can be given.
func (p Party) Sign(claims map[string]interface{}, headers map[string]interface{}) string {
	allHeaders := map[string]interface{}{"kid": p.KeyID}
	for k, v := range headers {
		allHeaders[k] = v
	}
	result, err := crypto.SignJWT(p.Key, jwa.ES256, claims, allHeaders)
	if err != nil {
		panic(err)
	}
	return result
}

// PublicKey returns the public key of the party.
func (p Party) PublicKey() jwk.Key {
	return cryptoTest.PublicJWK(p.Key)
}

// ProofJWT creates an OpenID4VCI JWT proof for the given credential issuer and c_nonce.
func (p Party) ProofJWT(audience string, nonce string) string {
	return p.Sign(map[string]interface{}{
		"aud":   audience,
		"iat":   time.Now().Unix(),
		"nonce": nonce,
	}, map[string]interface{}{"typ": "openid4vci-proof+jwt"})
}

// AccessToken creates an access token issued to the given subject, valid for an hour.
func (p Party) AccessToken(audience string, subject string) string {
	return p.Sign(map[string]interface{}{
		"iss": p.DID.String(),
		"aud": audience,
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}, nil)
}

// Credential returns a v2 credential issued by the party to the given subject, valid from an hour ago until an hour from now.
func (p Party) Credential(subject string, claims map[string]interface{}) credential.VerifiableCredential {
	credentialSubject := map[string]interface{}{"id": subject}
	for k, v := range claims {
		credentialSubject[k] = v
	}
	return credential.VerifiableCredential{
		Context:           credential.DataModelV2.Contexts(),
		ID:                "urn:uuid:test",
		Type:              []string{credential.VerifiableCredentialType, "VcTest"},
		Issuer:            p.DID.String(),
		ValidFrom:         time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		ValidUntil:        time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		CredentialSubject: credentialSubject,
	}
}

// JWTVC signs the credential as JWT VC.
func (p Party) JWTVC(vc credential.VerifiableCredential) string {
	vcAsMap, err := vc.ToMap()
	if err != nil {
		panic(err)
	}
	return p.Sign(map[string]interface{}{
		"iss": vc.Issuer,
		"sub": vc.SubjectID(),
		"vc":  vcAsMap,
	}, nil)
}

// JWTVP creates a JWT VP containing the given JWT VCs, for the given audience and nonce.
func (p Party) JWTVP(audience string, nonce string, credentials ...string) string {
	vcs := make([]interface{}, len(credentials))
	for i, curr := range credentials {
		vcs[i] = curr
	}
	return p.Sign(map[string]interface{}{
		"iss":   p.DID.String(),
		"aud":   audience,
		"nonce": nonce,
		"exp":   time.Now().Add(time.Minute).Unix(),
		"vp": map[string]interface{}{
			"@context":             []interface{}{credential.VCDataModel1Context},
			"type":                 []interface{}{credential.VerifiablePresentationType},
			"holder":               p.DID.String(),
			"verifiableCredential": vcs,
		},
	}, nil)
}
