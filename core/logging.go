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

package core

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldCredentialID is the log field key for the ID of a Verifiable Credential.
	LogFieldCredentialID = "credentialID"
	// LogFieldCredentialType is the log field key for the type of a Verifiable Credential.
	LogFieldCredentialType = "credentialType"
	// LogFieldCredentialFormat is the log field key for the wire format of a Verifiable Credential or Presentation.
	LogFieldCredentialFormat = "credentialFormat"
	// LogFieldDescriptorID is the log field key for the ID of a Presentation Exchange input descriptor.
	LogFieldDescriptorID = "descriptorID"

	// LogFieldStore is the log field key for the name of a store managed by the storage module.
	LogFieldStore = "store"

	// LogFieldKeyID is the log field key for the unique ID of a key from the VDR or crypto module.
	LogFieldKeyID = "keyID"
	// LogFieldDID is the log field key for the ID of a DID document from the VDR module.
	LogFieldDID = "did"

	// LogFieldGrantType is the log field key for the OAuth2 grant type of a token request.
	LogFieldGrantType = "grantType"
	// LogFieldClientID is the log field key for the OAuth2 client identifier.
	LogFieldClientID = "clientID"
)
