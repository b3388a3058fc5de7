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

package credential

import (
	"encoding/json"
	"fmt"
)

// DataModel is the version of the W3C Verifiable Credentials Data Model a credential adheres to.
type DataModel int

const (
	// DataModelV1 is the W3C Verifiable Credentials Data Model v1.1.
	DataModelV1 DataModel = iota + 1
	// DataModelV2 is the W3C Verifiable Credentials Data Model v2.0.
	DataModelV2
)

func (d DataModel) String() string {
	switch d {
	case DataModelV1:
		return "v1"
	case DataModelV2:
		return "v2"
	}
	return fmt.Sprintf("DataModel(%d)", int(d))
}

// Contexts returns the canonical @context list of the data model.
func (d DataModel) Contexts() []string {
	switch d {
	case DataModelV1:
		return []string{VCDataModel1Context}
	case DataModelV2:
		return []string{VCDataModel2Context}
	}
	return nil
}

const (
	// VCDataModel1Context is the base JSON-LD context of the v1.1 data model.
	VCDataModel1Context = "https://www.w3.org/2018/credentials/v1"
	// VCDataModel2Context is the base JSON-LD context of the v2.0 data model.
	VCDataModel2Context = "https://www.w3.org/ns/credentials/v2"
	// VerifiablePresentationType is the type every Verifiable Presentation must have.
	VerifiablePresentationType = "VerifiablePresentation"
	// VerifiableCredentialType is the type every Verifiable Credential must have.
	VerifiableCredentialType = "VerifiableCredential"
)

// Schema refers to a JSON schema a credential must adhere to.
type Schema struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Schemas is a list of credential schemas. In JSON it may be expressed as single object or as array.
type Schemas []Schema

// UnmarshalJSON accepts both a single schema object and an array of schemas.
func (s *Schemas) UnmarshalJSON(data []byte) error {
	var list []Schema
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single Schema
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("credentialSchema must be an object or an array of objects: %w", err)
	}
	*s = Schemas{single}
	return nil
}

// VerifiableCredential is an unsigned W3C Verifiable Credential.
// Which timestamps are set depends on the data model: v1 uses issuanceDate/issued/expirationDate (and validFrom),
// v2 uses validFrom/validUntil.
type VerifiableCredential struct {
	Context           []string               `json:"@context"`
	ID                string                 `json:"id,omitempty"`
	Type              []string               `json:"type"`
	Issuer            string                 `json:"issuer"`
	IssuanceDate      string                 `json:"issuanceDate,omitempty"`
	Issued            string                 `json:"issued,omitempty"`
	ValidFrom         string                 `json:"validFrom,omitempty"`
	ExpirationDate    string                 `json:"expirationDate,omitempty"`
	ValidUntil        string                 `json:"validUntil,omitempty"`
	Description       string                 `json:"description,omitempty"`
	CredentialSubject map[string]interface{} `json:"credentialSubject"`
	CredentialSchema  Schemas                `json:"credentialSchema,omitempty"`
	CredentialStatus  interface{}            `json:"credentialStatus,omitempty"`
	TermsOfUse        interface{}            `json:"termsOfUse,omitempty"`
	Proof             map[string]interface{} `json:"proof,omitempty"`
}

// SubjectID returns the id of the credential subject, or an empty string if there is none.
func (v VerifiableCredential) SubjectID() string {
	id, _ := v.CredentialSubject["id"].(string)
	return id
}

// ToMap returns the credential as generic JSON object.
func (v VerifiableCredential) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	result := make(map[string]interface{})
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ParseVerifiableCredential converts a generic JSON value (e.g. the vc claim of a JWT) into a VerifiableCredential.
func ParseVerifiableCredential(value interface{}) (*VerifiableCredential, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var result VerifiableCredential
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid verifiable credential: %w", err)
	}
	return &result, nil
}

// DetectDataModel determines the data model of a credential from its @context.
// All canonical contexts of the data model must be present. It returns an error if neither data model matches.
func DetectDataModel(contexts []string) (DataModel, error) {
	for _, dataModel := range []DataModel{DataModelV1, DataModelV2} {
		if containsAll(contexts, dataModel.Contexts()) {
			return dataModel, nil
		}
	}
	return 0, ErrUnknownDataModel
}

func containsAll(values []string, required []string) bool {
	for _, r := range required {
		found := false
		for _, v := range values {
			if v == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
