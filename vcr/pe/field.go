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
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/dlclark/regexp2"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/vcr/schema"
	"github.com/santhosh-tekuri/jsonschema"
)

// ResolveInputDescriptor extracts the claims requested by the input descriptor's constraint fields from the given credential
// (in its generic JSON form). For each field, the candidate paths are tried in order: the first value that matches the filter
// (or, without filter, the first value found) is kept. Claims are keyed by the field's id, or by the matching path if it has none.
// A field without a match yields a nil claim when it's optional, and an error otherwise.
func ResolveInputDescriptor(descriptor InputDescriptor, credential interface{}) (map[string]interface{}, error) {
	result := map[string]interface{}{}
	if descriptor.Constraints == nil {
		return result, nil
	}
	for _, field := range descriptor.Constraints.Fields {
		if len(field.Path) == 0 {
			return nil, oauth.InvalidRequestError("At least one path must be specified for each field specification")
		}
		path, value, found, err := resolveField(field, credential)
		if err != nil {
			return nil, err
		}
		if !found && (field.Optional == nil || !*field.Optional) {
			return nil, oauth.InvalidRequestError("Input descriptor %s not resolved", descriptor.Id)
		}
		if field.Id != nil {
			result[*field.Id] = value
		} else {
			result[path] = value
		}
	}
	return result, nil
}

// resolveField returns the first path (and its value) that satisfies the field.
// A path that resolves to JSON null counts as found. If no path is found, it returns the first path and found is false.
func resolveField(field Field, credential interface{}) (string, interface{}, bool, error) {
	var filter *compiledFilter
	if field.Filter != nil {
		var err error
		if filter, err = compileFilter(field.Filter); err != nil {
			return "", nil, false, err
		}
	}
	for _, path := range field.Path {
		value, found, err := lookupPath(path, credential)
		if err != nil {
			return "", nil, false, oauth.InvalidRequestError("invalid JSON path %s: %s", path, err.Error())
		}
		if !found {
			continue
		}
		if filter == nil || filter.matches(value) {
			return path, value, true, nil
		}
	}
	return field.Path[0], nil, false, nil
}

// GetValueAtPath returns the value at the JSON path, or nil if it doesn't resolve.
// For paths that can select multiple values, the first one is returned.
func GetValueAtPath(path string, document interface{}) (interface{}, error) {
	value, _, err := lookupPath(path, document)
	return value, err
}

// lookupPath resolves the JSON path. found is false when the path doesn't select anything.
func lookupPath(path string, document interface{}) (interface{}, bool, error) {
	value, err := jsonpath.Get(path, document)
	// jsonpath.Get returns some errors if the path is not found, or it has a different type as expected
	if err != nil && (strings.HasPrefix(err.Error(), "unknown key") || strings.HasPrefix(err.Error(), "unsupported value type")) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if isMultiValuePath(path) {
		values, ok := value.([]interface{})
		if !ok || len(values) == 0 {
			return nil, false, nil
		}
		return values[0], true, nil
	}
	return value, true, nil
}

// isMultiValuePath reports whether the path contains wildcards, filters, unions, slices or recursive descent.
// Quoted member names (e.g. $["https://schema.org/name"]) are not taken into account.
func isMultiValuePath(path string) bool {
	unquoted := stripQuoted(path)
	return strings.ContainsAny(unquoted, "*?,:") || strings.Contains(unquoted, "..")
}

func stripQuoted(path string) string {
	var result strings.Builder
	var quote rune
	escaped := false
	for _, c := range path {
		switch {
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case quote == 0:
			result.WriteRune(c)
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			quote = 0
		}
	}
	return result.String()
}

// compiledFilter is a field filter: a JSON schema plus an optional ECMAScript regular expression for string values.
// The pattern is matched separately since the schema compiler only supports Go regular expressions.
type compiledFilter struct {
	schema  *jsonschema.Schema
	pattern *regexp2.Regexp
}

func compileFilter(filter map[string]interface{}) (*compiledFilter, error) {
	result := compiledFilter{}
	withoutPattern := make(map[string]interface{}, len(filter))
	for key, value := range filter {
		if key != "pattern" {
			withoutPattern[key] = value
			continue
		}
		pattern, ok := value.(string)
		if !ok {
			return nil, oauth.InvalidRequestError("filter pattern must be a string")
		}
		re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
		if err != nil {
			return nil, oauth.InvalidRequestError("invalid filter pattern: %s", err.Error())
		}
		result.pattern = re
	}
	compiled, err := schema.CompileFilter(withoutPattern)
	if err != nil {
		return nil, oauth.InvalidRequestError("invalid filter: %s", err.Error())
	}
	result.schema = compiled
	return &result, nil
}

func (f compiledFilter) matches(value interface{}) bool {
	if schema.Validate(f.schema, value) != nil {
		return false
	}
	if f.pattern == nil {
		return true
	}
	str, ok := value.(string)
	if !ok {
		return false
	}
	match, err := f.pattern.MatchString(str)
	return err == nil && match
}
