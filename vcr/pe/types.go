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

// PresentationDefinition describes the credentials a verifier requests, as specified by
// https://identity.foundation/presentation-exchange/spec/v2.0.0/#presentation-definition
type PresentationDefinition struct {
	Id               string             `json:"id"`
	Name             string             `json:"name,omitempty"`
	Purpose          string             `json:"purpose,omitempty"`
	Format           Formats            `json:"format,omitempty"`
	InputDescriptors []*InputDescriptor `json:"input_descriptors"`
}

// InputDescriptor describes a single credential that is requested.
type InputDescriptor struct {
	Id      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	// Format overrides the format of the presentation definition, if set.
	Format      Formats      `json:"format,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty"`
}

// Constraints lists the fields that are extracted from the credential.
type Constraints struct {
	Fields          []Field `json:"fields,omitempty"`
	LimitDisclosure string  `json:"limit_disclosure,omitempty"`
}

// Field selects a claim from a credential. Paths are evaluated in order, the first one that yields a value
// (matching the filter, if any) wins.
type Field struct {
	Id      *string  `json:"id,omitempty"`
	Path    []string `json:"path"`
	Purpose *string  `json:"purpose,omitempty"`
	Name    *string  `json:"name,omitempty"`
	// Filter is a JSON schema the value must validate against.
	Filter   map[string]interface{} `json:"filter,omitempty"`
	Optional *bool                  `json:"optional,omitempty"`
}

// PresentationSubmission maps the input descriptors of a presentation definition to the credentials in a presentation.
type PresentationSubmission struct {
	Id            string                          `json:"id"`
	DefinitionId  string                          `json:"definition_id"`
	DescriptorMap []*InputDescriptorMappingObject `json:"descriptor_map"`
}

// InputDescriptorMappingObject locates the credential for an input descriptor.
// PathNested is evaluated against the decoded object found at Path, e.g. to select a VC within a VP.
type InputDescriptorMappingObject struct {
	Id         string                        `json:"id"`
	Path       string                        `json:"path"`
	Format     string                        `json:"format"`
	PathNested *InputDescriptorMappingObject `json:"path_nested,omitempty"`
}

// InputDescriptorByID returns the input descriptor with the given ID, or nil if there is none.
func (p PresentationDefinition) InputDescriptorByID(id string) *InputDescriptor {
	for _, curr := range p.InputDescriptors {
		if curr != nil && curr.Id == id {
			return curr
		}
	}
	return nil
}

// EffectiveFormat returns the format constraints for the given input descriptor:
// the descriptor's own format if set, the definition's format otherwise.
func (p PresentationDefinition) EffectiveFormat(inputDescriptor InputDescriptor) Formats {
	if len(inputDescriptor.Format) > 0 {
		return inputDescriptor.Format
	}
	return p.Format
}
