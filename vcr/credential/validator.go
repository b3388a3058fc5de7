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
	"errors"
	"time"

	"github.com/nuts-foundation/openid4vc/core"
)

// ErrUnknownDataModel is returned when the @context of a credential doesn't match any supported data model.
var ErrUnknownDataModel = errors.New("Invalid @context specified")

// ErrMissingIssuanceDate is returned when a v1 credential doesn't have an issuanceDate.
var ErrMissingIssuanceDate = errors.New("A W3C VC for data model V1 Must contain an issuanceDate parameter")

// ErrNotYetValid is returned when the validFrom of a credential lies in the future.
var ErrNotYetValid = errors.New("is not yet valid")

// ErrInvalidIssuanceDate is returned when the issuanceDate of a credential lies in the future.
var ErrInvalidIssuanceDate = errors.New("invalid issuance date")

// ErrExpired is returned when a credential is past its expirationDate or validUntil.
var ErrExpired = errors.New("is expired")

// ValidateTimestamps checks the temporal validity of the credential at the given moment:
//   - validFrom must not be in the future
//   - v1: issuanceDate is required and must not be in the future, expirationDate (if set) must be in the future
//   - v2: validUntil (if set) must be in the future
//
// Timestamps that can't be parsed render the credential invalid.
func ValidateTimestamps(vc VerifiableCredential, dataModel DataModel, now time.Time) error {
	if vc.ValidFrom != "" {
		validFrom, err := core.ParseTime(vc.ValidFrom)
		if err != nil {
			return err
		}
		if validFrom.After(now) {
			return ErrNotYetValid
		}
	}
	switch dataModel {
	case DataModelV1:
		if vc.IssuanceDate == "" {
			return ErrMissingIssuanceDate
		}
		issuanceDate, err := core.ParseTime(vc.IssuanceDate)
		if err != nil {
			return err
		}
		if now.Before(issuanceDate) {
			return ErrInvalidIssuanceDate
		}
		if vc.ExpirationDate != "" {
			if err = notExpired(vc.ExpirationDate, now); err != nil {
				return err
			}
		}
	case DataModelV2:
		if vc.ValidUntil != "" {
			if err := notExpired(vc.ValidUntil, now); err != nil {
				return err
			}
		}
	default:
		return ErrUnknownDataModel
	}
	return nil
}

func notExpired(value string, now time.Time) error {
	expiry, err := core.ParseTime(value)
	if err != nil {
		return err
	}
	if !now.Before(expiry) {
		return ErrExpired
	}
	return nil
}
