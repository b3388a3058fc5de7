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

package proof

import (
	"context"
	"sync"

	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
)

// Type is the proof mechanism of a ControlProof, as indicated by the proof_type parameter.
type Type string

// JWTType is a proof of possession expressed as signed JWT.
// See https://openid.net/specs/openid-4-verifiable-credential-issuance-1_0.html#name-jwt-proof-type
const JWTType Type = "jwt"

// JWTProofTyp is the required typ header of JWT proofs.
const JWTProofTyp = "openid4vci-proof+jwt"

// ControlProof is a proof of possession of key material, sent by a wallet in a credential request.
// It holds exactly one variant, indicated by Type.
type ControlProof struct {
	Type Type
	// JWT contains the compact JWT, set if Type is JWTType.
	JWT string

	identifierOnce sync.Once
	identifier     string
	identifierErr  error
}

// FromJSON creates a ControlProof from the proof object of a credential request.
func FromJSON(data map[string]interface{}) (*ControlProof, error) {
	proofType, _ := data["proof_type"].(string)
	if proofType == "" {
		return nil, oauth.InvalidProofError(`The "proof_type" parameter is required in a control proof`)
	}
	switch Type(proofType) {
	case JWTType:
		jwt, _ := data["jwt"].(string)
		if jwt == "" {
			return nil, oauth.InvalidProofError(`Proof of type "jwt" needs a "jwt" parameter`)
		}
		return NewJWTProof(jwt), nil
	default:
		return nil, oauth.InvalidProofError("Invalid proof type specified")
	}
}

// NewJWTProof creates a ControlProof of type JWTType.
func NewJWTProof(jwt string) *ControlProof {
	return &ControlProof{Type: JWTType, JWT: jwt}
}

// ToJSON returns the proof in the form it's sent in a credential request.
func (c *ControlProof) ToJSON() map[string]interface{} {
	result := map[string]interface{}{"proof_type": string(c.Type)}
	switch c.Type {
	case JWTType:
		result["jwt"] = c.JWT
	}
	return result
}

// AssociatedIdentifier returns the DID of the wallet that created the proof.
// The result is computed once.
func (c *ControlProof) AssociatedIdentifier() (string, error) {
	c.identifierOnce.Do(func() {
		switch c.Type {
		case JWTType:
			c.identifier, c.identifierErr = jwtIdentifier(c.JWT)
		default:
			c.identifierErr = oauth.InvalidProofError("Invalid proof type specified")
		}
	})
	return c.identifier, c.identifierErr
}

// Verify checks the proof was created for the given c_nonce and audience (the credential issuer identifier),
// and that it's signed with an authentication key of the wallet's DID.
func (c *ControlProof) Verify(ctx context.Context, cNonce string, audience string, didResolver resolver.DIDResolver) error {
	switch c.Type {
	case JWTType:
		return c.verifyJWT(ctx, cNonce, audience, didResolver)
	default:
		return oauth.InvalidProofError("Invalid proof type specified")
	}
}

func jwtIdentifier(raw string) (string, error) {
	token, err := crypto.ParseUnverified(raw)
	if err != nil {
		return "", oauth.InvalidProofError("%s", crypto.ErrInvalidJWT).WithCause(err)
	}
	if token.KeyID() == "" {
		return "", oauth.InvalidProofError(`"kid" parameter must be specified`)
	}
	result, err := resolver.ObtainDID(token.KeyID(), token.StringClaim("iss"))
	if err != nil {
		return "", oauth.InvalidProofError("%s", err)
	}
	return result, nil
}

func (c *ControlProof) verifyJWT(ctx context.Context, cNonce string, audience string, didResolver resolver.DIDResolver) error {
	token, err := crypto.ParseUnverified(c.JWT)
	if err != nil {
		return oauth.InvalidProofError("%s", crypto.ErrInvalidJWT).WithCause(err)
	}
	if token.Type() != JWTProofTyp {
		return oauth.InvalidProofError(`Invalid "typ" parameter in proof header`)
	}
	if token.Algorithm() == "none" {
		return oauth.InvalidProofError(`The value of "alg" parameter can't be none`)
	}
	if token.KeyID() == "" {
		return oauth.InvalidProofError(`"kid" parameter must be specified`)
	}
	if audience == "" || !token.HasAudience(audience) {
		return oauth.InvalidProofError(`"aud" parameter is not specified or is invalid`)
	}
	if _, ok := token.NumericClaim("iat"); !ok {
		return oauth.InvalidProofError(`"iat" parameter must be specified`)
	}
	if nonce := token.StringClaim("nonce"); nonce == "" || nonce != cNonce {
		return oauth.InvalidProofError(`"nonce" parameter is not specified or is invalid`)
	}
	identifier, err := c.AssociatedIdentifier()
	if err != nil {
		return err
	}
	holderDID, err := did.ParseDID(identifier)
	if err != nil {
		return oauth.InvalidProofError("invalid DID: %s", identifier).WithCause(err)
	}
	document, err := didResolver.Resolve(ctx, *holderDID)
	if err != nil {
		return oauth.InvalidProofError("Did resolution failed: %s", err)
	}
	publicKey, err := resolver.ExtractJWK(document, token.KeyID(), resolver.Authentication)
	if err != nil {
		return oauth.InvalidProofError("%s", err)
	}
	if err = crypto.VerifySignature(c.JWT, publicKey); err != nil {
		return oauth.InvalidProofError("proof signature verification failed").WithCause(err)
	}
	return nil
}
