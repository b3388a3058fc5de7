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
	"errors"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
	"github.com/nuts-foundation/openid4vc/vcr/pe"
	"github.com/nuts-foundation/openid4vc/vcr/schema"
	"github.com/nuts-foundation/openid4vc/vcr/test"
	"github.com/nuts-foundation/openid4vc/vdr/didjwk"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/mock/gomock"
)

const verifierID = "https://verifier.example.com"

const testNonce = "nonce"

var invalidRequest = oauth.Error{Code: oauth.InvalidRequest}

type testContext struct {
	holder              test.Party
	issuer              test.Party
	fetcher             *core.MockFetcher
	nonceValidator      *MockNonceValidator
	credentialValidator *MockCredentialValidator
	resolver            *VpResolver
}

func newTestContext(t *testing.T) *testContext {
	ctrl := gomock.NewController(t)
	ctx := &testContext{
		holder:              test.NewParty(),
		issuer:              test.NewParty(),
		fetcher:             core.NewMockFetcher(ctrl),
		nonceValidator:      NewMockNonceValidator(ctrl),
		credentialValidator: NewMockCredentialValidator(ctrl),
	}
	ctx.resolver = NewVpResolver(didjwk.NewResolver(), verifierID, ctx.credentialValidator, ctx.nonceValidator, schema.NewLoader(ctx.fetcher), true)
	return ctx
}

// presentation returns a VP (signed by the holder) containing a VC (issued by the issuer to the holder).
func (c *testContext) presentation(vc credential.VerifiableCredential) string {
	return c.holder.JWTVP(verifierID, testNonce, c.issuer.JWTVC(vc))
}

func (c *testContext) expectValidNonce() {
	c.nonceValidator.EXPECT().ValidateNonce(gomock.Any(), c.holder.DID.String(), testNonce).Return(nil)
}

func (c *testContext) expectValidCredential() {
	c.credentialValidator.EXPECT().ValidateCredential(gomock.Any(), gomock.Any(), credential.DataModelV2, gomock.Any()).Return(nil)
}

func testDefinition(descriptorIDs ...string) pe.PresentationDefinition {
	nameID := "name"
	definition := pe.PresentationDefinition{
		Id: "definition",
		Format: pe.Formats{
			credential.JWTVPFormat: pe.JwtFormat{Alg: []string{"ES256"}},
			credential.JWTVCFormat: pe.JwtFormat{Alg: []string{"ES256"}},
		},
	}
	for _, id := range descriptorIDs {
		definition.InputDescriptors = append(definition.InputDescriptors, &pe.InputDescriptor{
			Id: id,
			Constraints: &pe.Constraints{Fields: []pe.Field{
				{Id: &nameID, Path: []string{"$.vc.credentialSubject.name"}},
			}},
		})
	}
	return definition
}

func nestedMapping(id string, vcIndex string) *pe.InputDescriptorMappingObject {
	return &pe.InputDescriptorMappingObject{
		Id:     id,
		Path:   "$",
		Format: "jwt_vp",
		PathNested: &pe.InputDescriptorMappingObject{
			Id:     id,
			Path:   "$.vp.verifiableCredential[" + vcIndex + "]",
			Format: "jwt_vc",
		},
	}
}

func testSubmission(mappings ...*pe.InputDescriptorMappingObject) pe.PresentationSubmission {
	return pe.PresentationSubmission{Id: "submission", DefinitionId: "definition", DescriptorMap: mappings}
}

func TestVpResolver_VerifyPresentation(t *testing.T) {
	ctx := context.Background()
	t.Run("ok", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		c.expectValidNonce()
		c.credentialValidator.EXPECT().ValidateCredential(gomock.Any(), gomock.Any(), credential.DataModelV2, gomock.Any()).
			DoAndReturn(func(_ context.Context, vc credential.VerifiableCredential, _ credential.DataModel, issuerKey jwk.Key) error {
				assert.Equal(t, c.issuer.DID.String(), vc.Issuer)
				assert.True(t, jwk.Equal(c.issuer.PublicKey(), issuerKey))
				return nil
			})
		validBefore := testutil.ToFloat64(presentationsVerified.WithLabelValues("valid"))

		result, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		require.NoError(t, err)
		assert.Equal(t, c.holder.DID.String(), result.HolderDID)
		assert.Equal(t, map[string]map[string]interface{}{"1": {"name": "John Doe"}}, result.ClaimsData)
		assert.Equal(t, validBefore+1, testutil.ToFloat64(presentationsVerified.WithLabelValues("valid")))
	})
	t.Run("credential used by multiple descriptors is verified once", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		nonceCalls := atomic.NewInt32(0)
		validatorCalls := atomic.NewInt32(0)
		c.nonceValidator.EXPECT().ValidateNonce(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ string) error {
				nonceCalls.Inc()
				return nil
			}).AnyTimes()
		c.credentialValidator.EXPECT().ValidateCredential(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ credential.VerifiableCredential, _ credential.DataModel, _ jwk.Key) error {
				validatorCalls.Inc()
				return nil
			}).AnyTimes()

		result, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1", "2"), testSubmission(nestedMapping("1", "0"), nestedMapping("2", "0")))

		require.NoError(t, err)
		assert.Len(t, result.ClaimsData, 2)
		assert.Equal(t, int32(1), nonceCalls.Load())
		assert.Equal(t, int32(1), validatorCalls.Load())
	})
	t.Run("cache does not outlive a call", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		c.nonceValidator.EXPECT().ValidateNonce(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		c.credentialValidator.EXPECT().ValidateCredential(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		for i := 0; i < 2; i++ {
			_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "0")))
			require.NoError(t, err)
		}
	})
	t.Run("credential schema", func(t *testing.T) {
		const schemaURL = "https://example.com/schema.json"
		vc := func(c *testContext) credential.VerifiableCredential {
			result := c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"})
			result.CredentialSchema = credential.Schemas{{ID: schemaURL, Type: "JsonSchema"}}
			return result
		}
		t.Run("valid", func(t *testing.T) {
			c := newTestContext(t)
			c.fetcher.EXPECT().Fetch(gomock.Any(), schemaURL).Return([]byte(`{"required": ["credentialSubject"]}`), nil)
			c.expectValidNonce()
			c.expectValidCredential()

			_, err := c.resolver.VerifyPresentation(ctx, c.presentation(vc(c)), testDefinition("1"), testSubmission(nestedMapping("1", "0")))

			assert.NoError(t, err)
		})
		t.Run("invalid", func(t *testing.T) {
			c := newTestContext(t)
			c.fetcher.EXPECT().Fetch(gomock.Any(), schemaURL).Return([]byte(`{"required": ["evidence"]}`), nil)
			c.expectValidNonce()

			_, err := c.resolver.VerifyPresentation(ctx, c.presentation(vc(c)), testDefinition("1"), testSubmission(nestedMapping("1", "0")))

			assert.ErrorContains(t, err, "VC does not validate against its own schema specification")
		})
		t.Run("fetch failure", func(t *testing.T) {
			c := newTestContext(t)
			c.fetcher.EXPECT().Fetch(gomock.Any(), schemaURL).Return(nil, errors.New("connection refused"))
			c.expectValidNonce()

			_, err := c.resolver.VerifyPresentation(ctx, c.presentation(vc(c)), testDefinition("1"), testSubmission(nestedMapping("1", "0")))

			assert.ErrorContains(t, err, "Can't recover credential schema")
			assert.ErrorContains(t, err, "connection refused")
		})
	})
	t.Run("error - definition ID mismatch", func(t *testing.T) {
		c := newTestContext(t)
		submission := testSubmission(nestedMapping("1", "0"))
		submission.DefinitionId = "other"
		invalidBefore := testutil.ToFloat64(presentationsVerified.WithLabelValues("invalid"))

		_, err := c.resolver.VerifyPresentation(ctx, "", testDefinition("1"), submission)

		assert.EqualError(t, err, "invalid_request - The submission definition ID is incorrect")
		assert.Equal(t, invalidBefore+1, testutil.ToFloat64(presentationsVerified.WithLabelValues("invalid")))
	})
	t.Run("error - descriptor count mismatch", func(t *testing.T) {
		c := newTestContext(t)

		_, err := c.resolver.VerifyPresentation(ctx, "", testDefinition("1", "2"), testSubmission(nestedMapping("1", "0")))

		assert.ErrorIs(t, err, invalidRequest)
		assert.ErrorContains(t, err, "The descriptor map length does not coincide with the input descriptors one")
	})
	t.Run("error - duplicate descriptor", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		c.expectValidNonce()
		c.expectValidCredential()

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1", "2"), testSubmission(nestedMapping("1", "0"), nestedMapping("1", "0")))

		assert.ErrorContains(t, err, "Can't be two descriptors with the same ID")
	})
	t.Run("error - unknown descriptor", func(t *testing.T) {
		c := newTestContext(t)

		_, err := c.resolver.VerifyPresentation(ctx, "", testDefinition("1"), testSubmission(nestedMapping("2", "0")))

		assert.EqualError(t, err, `invalid_request - Invalid descriptor id: "2"`)
	})
	t.Run("error - path does not resolve", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		c.expectValidNonce()

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "3")))

		assert.EqualError(t, err, "invalid_request - Descriptor 1 json path does not resolve to any data")
	})
	t.Run("error - credential subject is not the holder", func(t *testing.T) {
		c := newTestContext(t)
		other := test.NewParty()
		vp := c.presentation(c.issuer.Credential(other.DID.String(), map[string]interface{}{"name": "John Doe"}))
		c.expectValidNonce()

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - Credential subject ID and VP Holder mismatch")
	})
	t.Run("error - credential without presentation", func(t *testing.T) {
		c := newTestContext(t)
		vcJWT := c.issuer.JWTVC(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		mapping := &pe.InputDescriptorMappingObject{Id: "1", Path: "$", Format: "jwt_vc"}

		_, err := c.resolver.VerifyPresentation(ctx, vcJWT, testDefinition("1"), testSubmission(mapping))

		assert.EqualError(t, err, "invalid_request - A VC has been detected prior to any VP")
	})
	t.Run("error - presentation without credential", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), nil))
		c.expectValidNonce()
		mapping := &pe.InputDescriptorMappingObject{Id: "1", Path: "$", Format: "jwt_vp"}

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(mapping))

		assert.EqualError(t, err, "invalid_request - Submission resolution for descriptor 1 did not resolve in a valid VC")
	})
	t.Run("error - invalid audience", func(t *testing.T) {
		c := newTestContext(t)
		vcJWT := c.issuer.JWTVC(c.issuer.Credential(c.holder.DID.String(), nil))
		vp := c.holder.JWTVP("https://other.example.com", testNonce, vcJWT)

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - Invalid audience for VP Token")
	})
	t.Run("error - invalid nonce", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), nil))
		c.nonceValidator.EXPECT().ValidateNonce(gomock.Any(), gomock.Any(), testNonce).Return(errors.New("unknown nonce"))

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - Descriptor 1 invalid nonce specified: unknown nonce")
	})
	t.Run("error - expired credential", func(t *testing.T) {
		c := newTestContext(t)
		vc := c.issuer.Credential(c.holder.DID.String(), nil)
		vc.ValidUntil = time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)
		c.expectValidNonce()

		_, err := c.resolver.VerifyPresentation(ctx, c.presentation(vc), testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - 1 is expired")
	})
	t.Run("error - credential not yet valid", func(t *testing.T) {
		c := newTestContext(t)
		vc := c.issuer.Credential(c.holder.DID.String(), nil)
		vc.ValidFrom = time.Now().Add(time.Minute).UTC().Format(time.RFC3339)
		c.expectValidNonce()

		_, err := c.resolver.VerifyPresentation(ctx, c.presentation(vc), testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - 1 is not yet valid")
	})
	t.Run("error - unknown data model", func(t *testing.T) {
		c := newTestContext(t)
		vc := c.issuer.Credential(c.holder.DID.String(), nil)
		vc.Context = []string{"https://example.com/context"}
		c.expectValidNonce()

		_, err := c.resolver.VerifyPresentation(ctx, c.presentation(vc), testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - Invalid @context specified")
	})
	t.Run("error - credential signed by another key", func(t *testing.T) {
		c := newTestContext(t)
		forger := test.NewParty()
		forger.KeyID = c.issuer.KeyID
		vcJWT := forger.JWTVC(c.issuer.Credential(c.holder.DID.String(), nil))
		vp := c.holder.JWTVP(verifierID, testNonce, vcJWT)
		c.expectValidNonce()

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.ErrorContains(t, err, `Descriptor "1" JWT verification failed`)
	})
	t.Run("error - rejected by credential validator", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), nil))
		c.expectValidNonce()
		c.credentialValidator.EXPECT().ValidateCredential(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("issuer not trusted"))

		_, err := c.resolver.VerifyPresentation(ctx, vp, testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - issuer not trusted")
	})
	t.Run("error - algorithm not allowed by input descriptor", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		c.expectValidNonce()
		c.expectValidCredential()
		definition := testDefinition("1")
		definition.InputDescriptors[0].Format = pe.Formats{
			credential.JWTVCFormat: pe.JwtFormat{Alg: []string{"EdDSA"}},
		}

		_, err := c.resolver.VerifyPresentation(ctx, vp, definition, testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - Unsupported JWA")
	})
	t.Run("error - format not allowed", func(t *testing.T) {
		c := newTestContext(t)
		definition := testDefinition("1")
		definition.Format = pe.Formats{credential.JWTVCFormat: pe.JwtFormat{Alg: []string{"ES256"}}}

		_, err := c.resolver.VerifyPresentation(ctx, "", definition, testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - Unexpected format detected")
	})
	t.Run("error - credential format only allowed by input descriptor", func(t *testing.T) {
		c := newTestContext(t)
		vp := c.presentation(c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"}))
		c.expectValidNonce()
		definition := testDefinition("1")
		definition.Format = pe.Formats{credential.JWTVPFormat: pe.JwtFormat{Alg: []string{"ES256"}}}
		definition.InputDescriptors[0].Format = pe.Formats{
			credential.JWTVCFormat: pe.JwtFormat{Alg: []string{"ES256"}},
		}

		_, err := c.resolver.VerifyPresentation(ctx, vp, definition, testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - Unexpected format detected")
	})
	t.Run("error - linked data format", func(t *testing.T) {
		c := newTestContext(t)
		definition := testDefinition("1")
		definition.Format[credential.LDPVPFormat] = pe.LdFormat{ProofType: []string{"Ed25519Signature2018"}}
		mapping := &pe.InputDescriptorMappingObject{Id: "1", Path: "$", Format: "ldp_vp"}

		_, err := c.resolver.VerifyPresentation(ctx, map[string]interface{}{}, definition, testSubmission(mapping))

		assert.ErrorIs(t, err, oauth.Error{Code: oauth.ServerError})
	})
	t.Run("error - presentation is not a JWT", func(t *testing.T) {
		c := newTestContext(t)

		_, err := c.resolver.VerifyPresentation(ctx, map[string]interface{}{"vp": "x"}, testDefinition("1"), testSubmission(nestedMapping("1", "0")))

		assert.EqualError(t, err, "invalid_request - A JWT VP must be in string format")
	})
}

func TestVpResolver_VerifyPresentation_IssuedCredentialRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name       string
		validFrom  time.Duration
		validUntil time.Duration
		valid      bool
	}{
		{name: "within validity period", validFrom: -time.Hour, validUntil: time.Hour, valid: true},
		{name: "before validFrom", validFrom: time.Hour, validUntil: 2 * time.Hour},
		{name: "after validUntil", validFrom: -2 * time.Hour, validUntil: -time.Hour},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(t)
			vc := c.issuer.Credential(c.holder.DID.String(), map[string]interface{}{"name": "John Doe"})
			vc.ValidFrom = core.FormatTime(time.Now().Add(tc.validFrom))
			vc.ValidUntil = core.FormatTime(time.Now().Add(tc.validUntil))
			c.expectValidNonce()
			if tc.valid {
				c.expectValidCredential()
			}

			_, err := c.resolver.VerifyPresentation(ctx, c.presentation(vc), testDefinition("1"), testSubmission(nestedMapping("1", "0")))

			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, invalidRequest)
			}
		})
	}
}
