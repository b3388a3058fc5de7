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

package oauth

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"
)

// CredentialOffer is an OpenID4VCI credential offer, sent by an issuer to a wallet.
type CredentialOffer struct {
	CredentialIssuer string                 `json:"credential_issuer"`
	Credentials      []CredentialOfferData  `json:"credentials"`
	Grants           *CredentialOfferGrants `json:"grants,omitempty"`
}

// CredentialOfferData describes a credential that is offered.
type CredentialOfferData struct {
	Format         string          `json:"format"`
	Types          []string        `json:"types"`
	TrustFramework *TrustFramework `json:"trust_framework,omitempty"`
}

// TrustFramework describes the trust framework an offered credential is issued under.
type TrustFramework struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URI  string `json:"uri,omitempty"`
}

// CredentialOfferGrants lists the grants the wallet can use to obtain an access token for the offered credentials.
type CredentialOfferGrants struct {
	AuthorizationCode *AuthorizationCodeGrant `json:"authorization_code,omitempty"`
	PreAuthorizedCode *PreAuthorizedCodeGrant `json:"urn:ietf:params:oauth:grant-type:pre-authorized_code,omitempty"`
}

// AuthorizationCodeGrant is the authorization_code grant of a credential offer.
type AuthorizationCodeGrant struct {
	IssuerState string `json:"issuer_state"`
}

// PreAuthorizedCodeGrant is the pre-authorized_code grant of a credential offer.
type PreAuthorizedCodeGrant struct {
	PreAuthorizedCode string `json:"pre-authorized_code"`
	UserPinRequired   bool   `json:"user_pin_required"`
}

// NewCredentialOffer creates a credential offer without grants.
func NewCredentialOffer(credentialIssuer string) *CredentialOffer {
	return &CredentialOffer{CredentialIssuer: credentialIssuer}
}

// AddCredential adds the given credential to the offer.
func (o *CredentialOffer) AddCredential(format string, types ...string) *CredentialOffer {
	o.Credentials = append(o.Credentials, CredentialOfferData{Format: format, Types: types})
	return o
}

// WithAuthorizationCodeGrant adds an authorization_code grant. A random issuer_state is generated if none is given.
func (o *CredentialOffer) WithAuthorizationCodeGrant(issuerState string) *CredentialOffer {
	if issuerState == "" {
		issuerState = uuid.NewString()
	}
	o.grants().AuthorizationCode = &AuthorizationCodeGrant{IssuerState: issuerState}
	return o
}

// WithPreAuthorizedCodeGrant adds a pre-authorized_code grant. A random code is generated if none is given.
func (o *CredentialOffer) WithPreAuthorizedCodeGrant(code string, userPinRequired bool) *CredentialOffer {
	if code == "" {
		code = uuid.NewString()
	}
	o.grants().PreAuthorizedCode = &PreAuthorizedCodeGrant{PreAuthorizedCode: code, UserPinRequired: userPinRequired}
	return o
}

func (o *CredentialOffer) grants() *CredentialOfferGrants {
	if o.Grants == nil {
		o.Grants = &CredentialOfferGrants{}
	}
	return o.Grants
}

// URI encodes the offer as openid-credential-offer URI, with the offer passed by value.
func (o CredentialOffer) URI() (string, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	return CredentialOfferScheme + "?" + url.Values{CredentialOfferParam: []string{string(data)}}.Encode(), nil
}
