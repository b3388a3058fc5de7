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
	"errors"
	"fmt"
	"time"
)

// timestampLayout renders timestamps the way W3C credentials carry them: RFC3339 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrInvalidTimestamp is returned when a timestamp is not a RFC3339 date-time with an explicit offset.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTime parses a RFC3339 date-time and normalizes it to UTC.
// Date-times without an explicit offset are rejected, since their meaning depends on the local timezone.
func ParseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimestamp, value)
	}
	return parsed.UTC(), nil
}

// FormatTime formats the given time as RFC3339 UTC timestamp with millisecond precision (e.g. 2024-02-01T10:00:00.000Z).
func FormatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// EpochSeconds parses the given timestamp and returns it as seconds since the Unix epoch, as used in JWT claims.
func EpochSeconds(value string) (int64, error) {
	parsed, err := ParseTime(value)
	if err != nil {
		return 0, err
	}
	return parsed.Unix(), nil
}
