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
	"testing"

	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredentialJSON = `{
  "@context": ["https://www.w3.org/ns/credentials/v2"],
  "type": ["VerifiableCredential", "VcTest"],
  "issuer": "did:example:issuer",
  "credentialSubject": {
    "id": "did:example:holder",
    "name": "John Doe",
    "birthYear": 1970,
    "address": {"city": "Amsterdam"}
  }
}`

func testCredential(t *testing.T) interface{} {
	var result interface{}
	require.NoError(t, json.Unmarshal([]byte(testCredentialJSON), &result))
	return result
}

func TestResolveInputDescriptor(t *testing.T) {
	vc := testCredential(t)
	id := "name"
	optional := true
	t.Run("first path that resolves wins", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Id: &id, Path: []string{"$.credentialSubject.fullName", "$.credentialSubject.name"}},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, vc)

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"name": "John Doe"}, claims)
	})
	t.Run("keyed by path without id", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Path: []string{"$.credentialSubject.address.city"}},
			{Path: []string{"$.credentialSubject.birthYear"}},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, vc)

		require.NoError(t, err)
		assert.Equal(t, "Amsterdam", claims["$.credentialSubject.address.city"])
		assert.Equal(t, float64(1970), claims["$.credentialSubject.birthYear"])
	})
	t.Run("filter selects the matching path", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{
				Path:   []string{"$.credentialSubject.address.city", "$.credentialSubject.name"},
				Filter: map[string]interface{}{"type": "string", "const": "John Doe"},
			},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, vc)

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"$.credentialSubject.name": "John Doe"}, claims)
	})
	t.Run("filter on number", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Path: []string{"$.credentialSubject.birthYear"}, Filter: map[string]interface{}{"type": "number", "maximum": 2000}},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, vc)

		require.NoError(t, err)
		assert.Equal(t, float64(1970), claims["$.credentialSubject.birthYear"])
	})
	t.Run("ECMAScript pattern", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Path: []string{"$.credentialSubject.name"}, Filter: map[string]interface{}{"type": "string", "pattern": "^(?=.*Doe)John"}},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, vc)

		require.NoError(t, err)
		assert.Equal(t, "John Doe", claims["$.credentialSubject.name"])
	})
	t.Run("pattern does not match", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Path: []string{"$.credentialSubject.name"}, Filter: map[string]interface{}{"type": "string", "pattern": "^Jane"}},
		}}}

		_, err := ResolveInputDescriptor(descriptor, vc)

		assert.EqualError(t, err, "invalid_request - Input descriptor d1 not resolved")
	})
	t.Run("multi-value path yields the first value", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Id: &id, Path: []string{"$.type[*]"}},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, vc)

		require.NoError(t, err)
		assert.Equal(t, "VerifiableCredential", claims["name"])
	})
	t.Run("optional field not found", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Path: []string{"$.credentialSubject.email", "$.credentialSubject.mail"}, Optional: &optional},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, vc)

		require.NoError(t, err)
		value, ok := claims["$.credentialSubject.email"]
		assert.True(t, ok)
		assert.Nil(t, value)
	})
	t.Run("no constraints", func(t *testing.T) {
		claims, err := ResolveInputDescriptor(InputDescriptor{Id: "d1"}, vc)

		require.NoError(t, err)
		assert.Empty(t, claims)
	})
	t.Run("error - required field not found", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Path: []string{"$.credentialSubject.email"}},
		}}}

		_, err := ResolveInputDescriptor(descriptor, vc)

		assert.ErrorIs(t, err, oauth.Error{Code: oauth.InvalidRequest})
		assert.ErrorContains(t, err, "Input descriptor d1 not resolved")
	})
	t.Run("null value is a resolved claim", func(t *testing.T) {
		document := map[string]interface{}{"credentialSubject": map[string]interface{}{"middleName": nil}}
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Id: &id, Path: []string{"$.credentialSubject.middleName"}},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, document)

		require.NoError(t, err)
		value, ok := claims[id]
		assert.True(t, ok)
		assert.Nil(t, value)
	})
	t.Run("quoted member name", func(t *testing.T) {
		document := map[string]interface{}{"credentialSubject": map[string]interface{}{"https://schema.org/name": "Alice"}}
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Id: &id, Path: []string{`$.credentialSubject["https://schema.org/name"]`}},
		}}}

		claims, err := ResolveInputDescriptor(descriptor, document)

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"name": "Alice"}, claims)
	})
	t.Run("error - field without path", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{{}}}}

		_, err := ResolveInputDescriptor(descriptor, vc)

		assert.EqualError(t, err, "invalid_request - At least one path must be specified for each field specification")
	})
	t.Run("error - invalid pattern", func(t *testing.T) {
		descriptor := InputDescriptor{Id: "d1", Constraints: &Constraints{Fields: []Field{
			{Path: []string{"$.credentialSubject.name"}, Filter: map[string]interface{}{"pattern": "(unclosed"}},
		}}}

		_, err := ResolveInputDescriptor(descriptor, vc)

		assert.ErrorContains(t, err, "invalid filter pattern")
	})
}

func TestIsMultiValuePath(t *testing.T) {
	assert.False(t, isMultiValuePath("$.credentialSubject.name"))
	assert.False(t, isMultiValuePath(`$.credentialSubject["https://schema.org/name"]`))
	assert.False(t, isMultiValuePath(`$["a\"b,c"]`))
	assert.True(t, isMultiValuePath("$.credentialSubject.tags[*]"))
	assert.True(t, isMultiValuePath(`$["a","b"]`))
	assert.True(t, isMultiValuePath("$.tags[0:2]"))
	assert.True(t, isMultiValuePath("$..name"))
}

func TestGetValueAtPath(t *testing.T) {
	vc := testCredential(t)
	t.Run("unknown key is not an error", func(t *testing.T) {
		value, err := GetValueAtPath("$.unknown.key", vc)

		assert.NoError(t, err)
		assert.Nil(t, value)
	})
	t.Run("quoted member names are single-valued", func(t *testing.T) {
		document := map[string]interface{}{"credentialSubject": map[string]interface{}{
			"https://schema.org/name": "Alice",
			"a,b":                     "comma",
			"it's":                    "quote",
		}}

		value, err := GetValueAtPath(`$.credentialSubject["https://schema.org/name"]`, document)
		require.NoError(t, err)
		assert.Equal(t, "Alice", value)

		value, err = GetValueAtPath(`$.credentialSubject["a,b"]`, document)
		require.NoError(t, err)
		assert.Equal(t, "comma", value)

		value, err = GetValueAtPath(`$.credentialSubject["it's"]`, document)
		require.NoError(t, err)
		assert.Equal(t, "quote", value)
	})
	t.Run("wildcard returns the first value", func(t *testing.T) {
		value, err := GetValueAtPath("$.credentialSubject.tags[*]", map[string]interface{}{
			"credentialSubject": map[string]interface{}{"tags": []interface{}{"a", "b"}},
		})

		require.NoError(t, err)
		assert.Equal(t, "a", value)
	})
	t.Run("empty result of multi-value path", func(t *testing.T) {
		value, err := GetValueAtPath("$.credentialSubject.tags[*]", map[string]interface{}{
			"credentialSubject": map[string]interface{}{"tags": []interface{}{}},
		})

		assert.NoError(t, err)
		assert.Nil(t, value)
	})
}
