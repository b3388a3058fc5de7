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

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/storage/log"
	bolt "go.etcd.io/bbolt"
)

const fileMode = 0640

const lockAcquireTimeout = time.Second

// openBBoltDatabase opens (or creates) the BBolt database file at the given path, creating its directory if needed.
func openBBoltDatabase(config core.BBoltConfig) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("unable to create BBolt database directory: %w", err)
	}
	log.Logger().
		WithField(core.LogFieldStore, config.Path).
		Debug("Opening BBolt session database")
	db, err := bolt.Open(config.Path, fileMode, &bolt.Options{Timeout: lockAcquireTimeout})
	if err != nil {
		return nil, fmt.Errorf("unable to open BBolt database (path=%s): %w", config.Path, err)
	}
	return db, nil
}
