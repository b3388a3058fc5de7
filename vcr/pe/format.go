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

package pe

import (
	"encoding/json"
	"fmt"

	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
)

// Format holds the constraints for a credential or presentation format. It's either a JwtFormat or an LdFormat.
type Format interface {
	isFormat()
}

// JwtFormat lists the JWS algorithms allowed for a JWT based format.
type JwtFormat struct {
	Alg []string `json:"alg"`
}

// LdFormat lists the proof types allowed for a Linked Data format.
type LdFormat struct {
	ProofType []string `json:"proof_type"`
}

func (JwtFormat) isFormat() {}

func (LdFormat) isFormat() {}

// Formats maps format identifiers to their constraints.
type Formats map[credential.FormatID]Format

// UnmarshalJSON parses the format map. Unknown format identifiers and entries without alg or proof_type are rejected.
func (f *Formats) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	result := make(Formats, len(raw))
	for key, value := range raw {
		formatID, err := credential.ParseFormatID(key)
		if err != nil {
			return err
		}
		if algs, ok := value["alg"]; ok {
			var jwtFormat JwtFormat
			if err := json.Unmarshal(algs, &jwtFormat.Alg); err != nil {
				return fmt.Errorf("invalid alg for format %s: %w", key, err)
			}
			result[formatID] = jwtFormat
			continue
		}
		if proofTypes, ok := value["proof_type"]; ok {
			ldFormat := LdFormat{}
			if err := unmarshalStringOrArray(proofTypes, &ldFormat.ProofType); err != nil {
				return fmt.Errorf("invalid proof_type for format %s: %w", key, err)
			}
			result[formatID] = ldFormat
			continue
		}
		return fmt.Errorf("format %s must specify alg or proof_type", key)
	}
	*f = result
	return nil
}

// Algorithms returns the JWS algorithms allowed for the given format.
// It fails if the format isn't listed, and if the format is a Linked Data format (which aren't supported).
func (f Formats) Algorithms(format credential.FormatID) ([]string, error) {
	constraints, ok := f[format]
	if !ok {
		return nil, oauth.InvalidRequestError("Unexpected format detected")
	}
	switch c := constraints.(type) {
	case JwtFormat:
		return c.Alg, nil
	case LdFormat:
		return nil, oauth.InternalError("Linked Data formats are not supported")
	}
	return nil, oauth.InvalidRequestError("Unrecognized format detected")
}

func unmarshalStringOrArray(data json.RawMessage, target *[]string) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*target = []string{single}
		return nil
	}
	return json.Unmarshal(data, target)
}
