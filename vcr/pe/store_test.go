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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionResolver_LoadFromFile(t *testing.T) {
	write := func(t *testing.T, contents string) string {
		filename := filepath.Join(t.TempDir(), "definitions.json")
		require.NoError(t, os.WriteFile(filename, []byte(contents), 0600))
		return filename
	}
	t.Run("ok", func(t *testing.T) {
		store := DefinitionResolver{}

		err := store.LoadFromFile(write(t, `{"eu.europa.ec.euid": {"id": "pid", "input_descriptors": [{"id": "1"}]}}`))

		require.NoError(t, err)
		definition := store.ByScope("eu.europa.ec.euid")
		require.NotNil(t, definition)
		assert.Equal(t, "pid", definition.Id)
		assert.Nil(t, store.ByScope("other"))
	})
	t.Run("input descriptor without id", func(t *testing.T) {
		store := DefinitionResolver{}

		err := store.LoadFromFile(write(t, `{"scope": {"id": "pid", "input_descriptors": [{"name": "1"}]}}`))

		assert.EqualError(t, err, "presentation definition pid: each input descriptor must have an id")
		assert.Nil(t, store.ByScope("scope"))
	})
	t.Run("file does not exist", func(t *testing.T) {
		store := DefinitionResolver{}

		err := store.LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
