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
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
)

// RootPath is the JSON path that selects the object itself.
const RootPath = "$"

// DescriptorStep is a single level of a (possibly nested) input descriptor mapping.
type DescriptorStep struct {
	Path   string
	Format credential.FormatID
}

// Flatten returns the steps of the mapping, from the outermost to the innermost level.
// Every level must specify a known format and (if it specifies an id) share the id of the outermost level.
// An empty path defaults to RootPath.
func (m InputDescriptorMappingObject) Flatten() ([]DescriptorStep, error) {
	if m.Id == "" {
		return nil, oauth.InvalidRequestError("Each input descriptor must have an ID")
	}
	var steps []DescriptorStep
	for current := &m; current != nil; current = current.PathNested {
		if current.Id != "" && current.Id != m.Id {
			return nil, oauth.InvalidRequestError("Each level of nesting of a descriptor map must have the same ID")
		}
		if current.Format == "" {
			return nil, oauth.InvalidRequestError("Descriptor %s needs to specify a format", m.Id)
		}
		format, err := credential.ParseFormatID(current.Format)
		if err != nil {
			return nil, oauth.InvalidRequestError("Unexpected format detected")
		}
		path := current.Path
		if path == "" {
			path = RootPath
		}
		steps = append(steps, DescriptorStep{Path: path, Format: format})
	}
	return steps, nil
}
