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
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/core"
)

// Formatter expresses an unsigned credential in the shape that is signed for a specific format.
type Formatter interface {
	// Format returns the payload to sign.
	Format(vc VerifiableCredential) (map[string]interface{}, error)
}

// FormatterFor returns the Formatter for the given format and data model.
// Linked Data formats are not implemented.
func FormatterFor(format FormatID, dataModel DataModel) (Formatter, error) {
	switch format {
	case JWTVCJSONFormat, JWTVCFormat:
		return jwtFormatter{dataModel: dataModel}, nil
	case JWTVCJSONLDFormat, LDPVCFormat:
		return nil, oauth.InternalError("Unimplemented")
	default:
		return nil, oauth.InternalError("Unsupported format")
	}
}

// jwtFormatter maps a credential to JWT claims, as specified by https://www.w3.org/TR/vc-data-model/#jwt-encoding
type jwtFormatter struct {
	dataModel DataModel
}

func (j jwtFormatter) Format(vc VerifiableCredential) (map[string]interface{}, error) {
	vcAsMap, err := vc.ToMap()
	if err != nil {
		return nil, oauth.InternalError("unable to marshal credential").WithCause(err)
	}
	claims := map[string]interface{}{
		"sub": vc.SubjectID(),
		"iss": vc.Issuer,
		"vc":  vcAsMap,
	}
	if vc.ID != "" {
		claims["jti"] = vc.ID
	}
	var nbf, iat, exp string
	if j.dataModel == DataModelV1 {
		nbf = firstNonEmpty(vc.ValidFrom, vc.IssuanceDate, vc.Issued)
		iat = firstNonEmpty(vc.IssuanceDate, vc.Issued, vc.ValidFrom)
		exp = vc.ExpirationDate
	} else {
		nbf = vc.ValidFrom
		iat = vc.ValidFrom
		exp = vc.ValidUntil
	}
	for claim, value := range map[string]string{"nbf": nbf, "iat": iat, "exp": exp} {
		if value == "" {
			continue
		}
		seconds, err := core.EpochSeconds(value)
		if err != nil {
			return nil, oauth.InvalidDataProvided("invalid date for %q claim: %s", claim, value)
		}
		claims[claim] = seconds
	}
	return claims, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
