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

// Package schema compiles and applies JSON schemas (draft 7): credentialSchema documents referenced by credentials,
// and filters of presentation definition fields.
package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/nuts-foundation/openid4vc/core"
	"github.com/santhosh-tekuri/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/loader"
)

const filterResourceURL = "http://localhost/filter.json"

func init() {
	// Schemas are only loaded through a Loader (which uses a core.Fetcher), never by the compiler itself.
	loader.Load = func(url string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("refusing to load unknown schema: %s", url)
	}
}

// Loader fetches and compiles credential schemas. Compiled schemas are cached by URL.
type Loader struct {
	fetcher core.Fetcher
	cache   sync.Map
}

// NewLoader creates a Loader that retrieves schemas using the given fetcher.
func NewLoader(fetcher core.Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load returns the compiled schema identified by the given URL.
func (l *Loader) Load(ctx context.Context, url string) (*jsonschema.Schema, error) {
	if cached, ok := l.cache.Load(url); ok {
		return cached.(*jsonschema.Schema), nil
	}
	data, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch schema %s: %w", url, err)
	}
	compiled, err := compile(url, data)
	if err != nil {
		return nil, err
	}
	l.cache.Store(url, compiled)
	return compiled, nil
}

// CompileFilter compiles a JSON schema given in its generic JSON form, e.g. the filter of a presentation definition field.
func CompileFilter(filter map[string]interface{}) (*jsonschema.Schema, error) {
	data, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}
	return compile(filterResourceURL, data)
}

// Validate validates the given (generic JSON) value against the schema.
func Validate(schema *jsonschema.Schema, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return schema.Validate(bytes.NewReader(data))
}

func compile(url string, data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", url, err)
	}
	result, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("unable to compile schema %s: %w", url, err)
	}
	return result, nil
}
