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
	"context"

	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/storage/log"
)

// NewSessionDatabase creates the session database selected by the config:
// Redis if an address is configured, else BBolt if a path is configured, else an in-memory database.
func NewSessionDatabase(ctx context.Context, config core.StorageConfig) (SessionDatabase, error) {
	switch {
	case config.Redis.Address != "":
		client, err := createRedisClient(ctx, config.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisSessionDatabase(client, config.Redis.Prefix), nil
	case config.BBolt.Path != "":
		db, err := openBBoltDatabase(config.BBolt)
		if err != nil {
			return nil, err
		}
		return NewBBoltSessionDatabase(db), nil
	default:
		log.Logger().Debug("No session database configured, sessions are kept in memory")
		return NewInMemorySessionDatabase(), nil
	}
}
