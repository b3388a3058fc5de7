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
	"fmt"
	"strings"

	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/storage/log"
	"github.com/redis/go-redis/v9"
)

// redisOptions builds the client options from the config. The address is either host:port or a redis:// (rediss://) URL.
func redisOptions(config core.RedisConfig) (*redis.Options, error) {
	addr := config.Address
	if !isRedisURL(addr) {
		addr = "redis://" + addr
	}
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}
	if len(config.Password) > 0 {
		opts.Password = config.Password
	}
	if config.Database > 0 {
		opts.DB = config.Database
	}
	return opts, nil
}

func isRedisURL(addr string) bool {
	addr = strings.ToLower(addr)
	return strings.HasPrefix(addr, "redis://") ||
		strings.HasPrefix(addr, "rediss://") ||
		strings.HasPrefix(addr, "unix://")
}

// createRedisClient connects to the configured Redis server and checks it's reachable.
func createRedisClient(ctx context.Context, config core.RedisConfig) (*redis.Client, error) {
	opts, err := redisOptions(config)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis address: %w", err)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to Redis (address=%s): %w", opts.Addr, err)
	}
	log.Logger().Infof("Connected to Redis database (address=%s, db=%d)", opts.Addr, opts.DB)
	return client, nil
}
