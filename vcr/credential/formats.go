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

import "fmt"

// FormatID identifies a credential or presentation format.
// See https://openid.net/specs/openid-4-verifiable-credential-issuance-1_0.html#format-profiles
type FormatID string

const (
	// JWTVCJSONFormat is a JWT-secured credential, not using JSON-LD.
	JWTVCJSONFormat FormatID = "jwt_vc_json"
	// JWTVCFormat is the legacy identifier of jwt_vc_json.
	JWTVCFormat FormatID = "jwt_vc"
	// JWTVCJSONLDFormat is a JWT-secured credential using JSON-LD.
	JWTVCJSONLDFormat FormatID = "jwt_vc_json-ld"
	// LDPVCFormat is a credential secured with a Linked Data Proof.
	LDPVCFormat FormatID = "ldp_vc"
	// JWTVPJSONFormat is a JWT-secured presentation.
	JWTVPJSONFormat FormatID = "jwt_vp_json"
	// JWTVPFormat is the legacy identifier of jwt_vp_json.
	JWTVPFormat FormatID = "jwt_vp"
	// LDPVPFormat is a presentation secured with a Linked Data Proof.
	LDPVPFormat FormatID = "ldp_vp"
)

var knownFormats = []FormatID{JWTVCJSONFormat, JWTVCFormat, JWTVCJSONLDFormat, LDPVCFormat, JWTVPJSONFormat, JWTVPFormat, LDPVPFormat}

// ParseFormatID returns the FormatID for the given identifier, or an error if it's not a known format.
func ParseFormatID(value string) (FormatID, error) {
	for _, format := range knownFormats {
		if string(format) == value {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown format: %s", value)
}

// IsLinkedData returns true for formats secured with Linked Data Proofs, or using JSON-LD.
func (f FormatID) IsLinkedData() bool {
	switch f {
	case JWTVCJSONLDFormat, LDPVCFormat, LDPVPFormat:
		return true
	}
	return false
}

// IsPresentation returns true for presentation formats.
func (f FormatID) IsPresentation() bool {
	switch f {
	case JWTVPJSONFormat, JWTVPFormat, LDPVPFormat:
		return true
	}
	return false
}
