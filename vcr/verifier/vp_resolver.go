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
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
	"github.com/nuts-foundation/openid4vc/vcr/log"
	"github.com/nuts-foundation/openid4vc/vcr/pe"
	"github.com/nuts-foundation/openid4vc/vcr/schema"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
	"github.com/prometheus/client_golang/prometheus"
)

var nowFunc = time.Now

var presentationsVerified = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Name:      "presentations_verified_total",
	Help:      "Number of verified presentations, by result (valid or invalid).",
}, []string{"result"})

// VpResolver verifies Verifiable Presentations against a presentation definition and extracts the requested claims.
// It keeps no state between calls, so a single instance can be used concurrently.
type VpResolver struct {
	didResolver             resolver.DIDResolver
	audience                string
	credentialValidator     CredentialValidator
	nonceValidator          NonceValidator
	schemaLoader            *schema.Loader
	vcSignatureVerification bool
}

// NewVpResolver creates a VpResolver.
// audience is the expected aud of presentations, typically the identifier of the verifier.
// When vcSignatureVerification is set, the signatures of the credentials are verified using the assertionMethod keys of their issuers.
// schemaLoader is used to retrieve the credentialSchema of credentials, it may be nil if no credential refers to a schema.
func NewVpResolver(didResolver resolver.DIDResolver, audience string, credentialValidator CredentialValidator, nonceValidator NonceValidator,
	schemaLoader *schema.Loader, vcSignatureVerification bool) *VpResolver {
	if err := core.RegisterCollectors(nil, presentationsVerified); err != nil {
		log.Logger().WithError(err).Warn("Unable to register presentation metrics")
	}
	return &VpResolver{
		didResolver:             didResolver,
		audience:                audience,
		credentialValidator:     credentialValidator,
		nonceValidator:          nonceValidator,
		schemaLoader:            schemaLoader,
		vcSignatureVerification: vcSignatureVerification,
	}
}

type tokenKind int

const (
	vcToken tokenKind = iota
	vpToken
)

type decodedToken struct {
	kind   tokenKind
	claims map[string]interface{}
	alg    string
}

// resolution is the state of a single VerifyPresentation call.
type resolution struct {
	// cache holds the JWTs that were already decoded and verified, by their compact serialization
	cache map[string]decodedToken
	// holder is the DID of the holder of the last verified presentation
	holder string
}

// VerifyPresentation verifies the presentation vp, which can be any value the descriptor map of the submission
// refers into (typically a JWT VP). Every descriptor must resolve to a valid VC, from which the fields of the
// corresponding input descriptor are extracted.
func (v *VpResolver) VerifyPresentation(ctx context.Context, vp interface{}, definition pe.PresentationDefinition, submission pe.PresentationSubmission) (*ExtractedData, error) {
	result, err := v.verifyPresentation(ctx, vp, definition, submission)
	if err != nil {
		presentationsVerified.WithLabelValues("invalid").Inc()
		log.Logger().
			WithError(err).
			Debug("Presentation rejected")
		return nil, err
	}
	presentationsVerified.WithLabelValues("valid").Inc()
	return result, nil
}

func (v *VpResolver) verifyPresentation(ctx context.Context, vp interface{}, definition pe.PresentationDefinition, submission pe.PresentationSubmission) (*ExtractedData, error) {
	if definition.Id != submission.DefinitionId {
		return nil, oauth.InvalidRequestError("The submission definition ID is incorrect")
	}
	if len(submission.DescriptorMap) != len(definition.InputDescriptors) {
		return nil, oauth.InvalidRequestError("The descriptor map length does not coincide with the input descriptors one")
	}
	state := &resolution{cache: make(map[string]decodedToken)}
	claimsData := make(map[string]map[string]interface{}, len(submission.DescriptorMap))
	for _, descriptor := range submission.DescriptorMap {
		if descriptor == nil {
			return nil, oauth.InvalidRequestError("Each input descriptor must have an ID")
		}
		if _, exists := claimsData[descriptor.Id]; exists {
			return nil, oauth.InvalidRequestError("Can't be two descriptors with the same ID")
		}
		inputDescriptor := definition.InputDescriptorByID(descriptor.Id)
		if inputDescriptor == nil {
			return nil, oauth.InvalidRequestError("Invalid descriptor id: \"%s\"", descriptor.Id)
		}
		vcPayload, err := v.extractCredential(ctx, state, vp, *descriptor, definition.Format, definition.EffectiveFormat(*inputDescriptor))
		if err != nil {
			return nil, err
		}
		claims, err := pe.ResolveInputDescriptor(*inputDescriptor, vcPayload)
		if err != nil {
			return nil, err
		}
		claimsData[inputDescriptor.Id] = claims
	}
	return &ExtractedData{ClaimsData: claimsData, HolderDID: state.holder}, nil
}

// extractCredential walks the (nested) descriptor mapping through the presentation and returns the payload of the JWT VC it ends in.
// Every level is decoded using the algorithms the definition allows for its format. The algorithm of the credential
// must also be allowed by the format of the input descriptor.
func (v *VpResolver) extractCredential(ctx context.Context, state *resolution, vp interface{}, descriptor pe.InputDescriptorMappingObject,
	rootFormats pe.Formats, endFormats pe.Formats) (map[string]interface{}, error) {
	steps, err := descriptor.Flatten()
	if err != nil {
		return nil, err
	}
	var current interface{} = vp
	var last decodedToken
	for _, step := range steps {
		algs, err := rootFormats.Algorithms(step.Format)
		if err != nil {
			return nil, err
		}
		value, err := pe.GetValueAtPath(step.Path, current)
		if err != nil || value == nil {
			return nil, oauth.InvalidRequestError("Descriptor %s json path does not resolve to any data", descriptor.Id)
		}
		last, err = v.decode(ctx, state, step.Format, value, algs, descriptor.Id)
		if err != nil {
			return nil, err
		}
		current = last.claims
	}
	if _, isVC := last.claims["vc"]; !isVC {
		return nil, oauth.InvalidRequestError("Submission resolution for descriptor %s did not resolve in a valid VC", descriptor.Id)
	}
	algs, err := endFormats.Algorithms(steps[len(steps)-1].Format)
	if err != nil {
		return nil, err
	}
	if !contains(algs, last.alg) {
		return nil, oauth.InvalidRequestError("Unsupported JWA")
	}
	return last.claims, nil
}

func (v *VpResolver) decode(ctx context.Context, state *resolution, format credential.FormatID, value interface{}, algs []string, descriptorID string) (decodedToken, error) {
	if format.IsLinkedData() {
		return decodedToken{}, oauth.InternalError("LD formats are not supported right now")
	}
	switch format {
	case credential.JWTVCFormat, credential.JWTVCJSONFormat:
		return v.deserializeJWTVC(ctx, state, value, algs, descriptorID)
	case credential.JWTVPFormat, credential.JWTVPJSONFormat:
		return v.deserializeJWTVP(ctx, state, value, algs, descriptorID)
	}
	return decodedToken{}, oauth.InvalidRequestError("Unrecognized format detected")
}

func (v *VpResolver) deserializeJWTVC(ctx context.Context, state *resolution, value interface{}, algs []string, descriptorID string) (decodedToken, error) {
	raw, ok := value.(string)
	if !ok {
		return decodedToken{}, oauth.InvalidRequestError("JWT Token must be in string format")
	}
	if cached, ok := state.cache[raw]; ok && cached.kind == vcToken {
		return cached, nil
	}
	token, err := crypto.ParseUnverified(raw)
	if err != nil {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" contains an invalid JWT", descriptorID).WithCause(err)
	}
	if token.KeyID() == "" {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" JWT VC must contains a 'kid' parameter", descriptorID)
	}
	if !contains(algs, token.Algorithm()) {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" JWT VC unsupported JWA: %s", descriptorID, token.Algorithm())
	}
	vcClaim, ok := token.Claims["vc"]
	if !ok {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor %s is not a JWT VC", descriptorID)
	}
	vc, err := credential.ParseVerifiableCredential(vcClaim)
	if err != nil {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor %s is not a JWT VC", descriptorID).WithCause(err)
	}
	dataModel, err := credential.DetectDataModel(vc.Context)
	if err != nil {
		return decodedToken{}, oauth.InvalidRequestError("%s", err.Error())
	}
	if err = credential.ValidateTimestamps(*vc, dataModel, nowFunc()); err != nil {
		return decodedToken{}, timestampError(descriptorID, err)
	}
	subject := vc.SubjectID()
	if subject == "" {
		return decodedToken{}, oauth.InvalidRequestError("Credential Subject not defined")
	}
	if subjectDID, err := resolver.DIDFromURL(subject); err == nil {
		if state.holder == "" {
			return decodedToken{}, oauth.InvalidRequestError("A VC has been detected prior to any VP")
		}
		if state.holder != subjectDID.String() {
			return decodedToken{}, oauth.InvalidRequestError("Credential subject ID and VP Holder mismatch")
		}
	}
	var issuerKey jwk.Key
	if v.vcSignatureVerification {
		if issuerKey, err = v.resolveKey(ctx, vc.Issuer, token.KeyID(), resolver.AssertionMethod); err != nil {
			return decodedToken{}, err
		}
		if err = crypto.VerifySignature(raw, issuerKey); err != nil {
			return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" JWT verification failed", descriptorID).WithCause(err)
		}
	}
	if err = v.validateSchemas(ctx, *vc, vcClaim); err != nil {
		return decodedToken{}, err
	}
	if v.credentialValidator != nil {
		if err = v.credentialValidator.ValidateCredential(ctx, *vc, dataModel, issuerKey); err != nil {
			return decodedToken{}, oauth.InvalidRequestError("%s", err.Error())
		}
	}
	result := decodedToken{kind: vcToken, claims: token.Claims, alg: token.Algorithm()}
	state.cache[raw] = result
	return result, nil
}

func (v *VpResolver) deserializeJWTVP(ctx context.Context, state *resolution, value interface{}, algs []string, descriptorID string) (decodedToken, error) {
	raw, ok := value.(string)
	if !ok {
		return decodedToken{}, oauth.InvalidRequestError("A JWT VP must be in string format")
	}
	if cached, ok := state.cache[raw]; ok && cached.kind == vpToken {
		return cached, nil
	}
	token, err := crypto.ParseUnverified(raw)
	if err != nil {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" contains an invalid JWT", descriptorID).WithCause(err)
	}
	if token.KeyID() == "" {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" JWT VP must contains a 'kid' parameter", descriptorID)
	}
	if !contains(algs, token.Algorithm()) {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" JWT VP unsupported JWA: %s", descriptorID, token.Algorithm())
	}
	vp, ok := token.Claims["vp"].(map[string]interface{})
	if !ok {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor %s is not a JWT VP", descriptorID)
	}
	if !contains(stringValues(vp["type"]), credential.VerifiablePresentationType) {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor %s JWT VP must be of type \"%s\"", descriptorID, credential.VerifiablePresentationType)
	}
	if !token.HasAudience(v.audience) {
		return decodedToken{}, oauth.InvalidRequestError("Invalid audience for VP Token")
	}
	holder, _ := vp["holder"].(string)
	holderDIDURL, err := resolver.ObtainDID(token.KeyID(), holder)
	if err != nil {
		return decodedToken{}, oauth.InvalidRequestError("%s", err.Error())
	}
	document, key, err := v.resolveDocumentAndKey(ctx, holderDIDURL, token.KeyID(), resolver.Authentication)
	if err != nil {
		return decodedToken{}, err
	}
	if err = crypto.VerifySignature(raw, key); err != nil {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor \"%s\" JWT verification failed", descriptorID).WithCause(err)
	}
	if exp, ok := token.NumericClaim(jwt.ExpirationKey); ok && time.Unix(exp, 0).Add(crypto.ClockSkew).Before(nowFunc()) {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor %s VP Token is expired", descriptorID)
	}
	if v.nonceValidator == nil {
		return decodedToken{}, oauth.InsufficientParameters("a nonce validator is required to verify presentations")
	}
	if err = v.nonceValidator.ValidateNonce(ctx, holderDIDURL, token.StringClaim(oauth.NonceParam)); err != nil {
		return decodedToken{}, oauth.InvalidRequestError("Descriptor %s invalid nonce specified: %s", descriptorID, err.Error())
	}
	state.holder = document.ID.String()
	result := decodedToken{kind: vpToken, claims: token.Claims, alg: token.Algorithm()}
	state.cache[raw] = result
	return result, nil
}

func (v *VpResolver) validateSchemas(ctx context.Context, vc credential.VerifiableCredential, vcClaim interface{}) error {
	for _, credentialSchema := range vc.CredentialSchema {
		if v.schemaLoader == nil {
			return oauth.InvalidRequestError("Can't recover credential schema: no schema loader configured")
		}
		compiled, err := v.schemaLoader.Load(ctx, credentialSchema.ID)
		if err != nil {
			return oauth.InvalidRequestError("Can't recover credential schema: %s", err.Error())
		}
		if err = schema.Validate(compiled, vcClaim); err != nil {
			return oauth.InvalidRequestError("VC does not validate against its own schema specification").WithCause(err)
		}
	}
	return nil
}

func (v *VpResolver) resolveKey(ctx context.Context, didURL string, keyID string, relationType resolver.RelationType) (jwk.Key, error) {
	_, key, err := v.resolveDocumentAndKey(ctx, didURL, keyID, relationType)
	return key, err
}

func (v *VpResolver) resolveDocumentAndKey(ctx context.Context, didURL string, keyID string, relationType resolver.RelationType) (*did.Document, jwk.Key, error) {
	id, err := resolver.DIDFromURL(didURL)
	if err != nil {
		return nil, nil, oauth.InvalidRequestError("Invalid DID: %s", didURL).WithCause(err)
	}
	document, err := v.didResolver.Resolve(ctx, id)
	if err != nil {
		return nil, nil, oauth.InvalidRequestError("Did resolution failed: %s", err.Error())
	}
	key, err := resolver.ExtractJWK(document, keyID, relationType)
	if err != nil {
		return nil, nil, oauth.InvalidRequestError("%s", err.Error())
	}
	return document, key, nil
}

func timestampError(descriptorID string, err error) error {
	switch {
	case errors.Is(err, credential.ErrNotYetValid), errors.Is(err, credential.ErrInvalidIssuanceDate), errors.Is(err, credential.ErrExpired):
		return oauth.InvalidRequestError("%s %s", descriptorID, err.Error())
	case errors.Is(err, core.ErrInvalidTimestamp):
		return oauth.InvalidRequestError("%s has an invalid timestamp", descriptorID).WithCause(err)
	}
	return oauth.InvalidRequestError("%s", err.Error())
}

func stringValues(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []interface{}:
		var result []string
		for _, curr := range v {
			if str, ok := curr.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, curr := range values {
		if curr == value {
			return true
		}
	}
	return false
}
