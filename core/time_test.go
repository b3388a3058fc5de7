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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		actual, err := ParseTime("2024-03-01T12:00:00+02:00")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), actual)
		assert.Equal(t, time.UTC, actual.Location())
	})
	t.Run("fractional seconds", func(t *testing.T) {
		actual, err := ParseTime("2024-03-01T12:00:00.250Z")

		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, time.Duration(actual.Nanosecond()))
	})
	t.Run("local time without offset", func(t *testing.T) {
		_, err := ParseTime("2024-03-01T12:00:00")

		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := ParseTime("")

		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestFormatTime(t *testing.T) {
	moment := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	assert.Equal(t, "2024-03-01T10:00:00.000Z", FormatTime(moment))
}

func TestEpochSeconds(t *testing.T) {
	seconds, err := EpochSeconds("1970-01-01T00:01:40.900Z")

	require.NoError(t, err)
	assert.Equal(t, int64(100), seconds)
}
