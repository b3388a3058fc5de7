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
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/storage/log"
	"github.com/redis/go-redis/v9"
)

var _ SessionDatabase = (*redisSessionDatabase)(nil)
var _ SessionStore = (*redisSessionStore)(nil)

// NewRedisSessionDatabase creates a SessionDatabase that stores entries in Redis, which expires them.
// All keys are prefixed with the given prefix.
func NewRedisSessionDatabase(client redis.UniversalClient, prefix string) SessionDatabase {
	return redisSessionDatabase{
		client: client,
		prefix: prefix,
	}
}

type redisSessionDatabase struct {
	client redis.UniversalClient
	prefix string
}

func (s redisSessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	var prefixParts []string
	if len(s.prefix) > 0 {
		prefixParts = append(prefixParts, s.prefix)
	}
	prefixParts = append(prefixParts, keys...)
	return redisSessionStore{
		client:    s.client,
		ttl:       ttl,
		storeName: strings.Join(prefixParts, "."),
	}
}

func (s redisSessionDatabase) Close() {
	if err := s.client.Close(); err != nil {
		log.Logger().WithError(err).Error("Failed to close Redis client")
	}
}

type redisSessionStore struct {
	client    redis.UniversalClient
	ttl       time.Duration
	storeName string
}

func (s redisSessionStore) Delete(key string) error {
	return s.client.Del(context.Background(), s.getFullKey(key)).Err()
}

func (s redisSessionStore) Exists(key string) bool {
	result, err := s.client.Exists(context.Background(), s.getFullKey(key)).Result()
	if err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldStore, s.storeName).
			Error("Failed to check whether value exists in Redis session store")
		return false
	}
	return result > 0
}

func (s redisSessionStore) Get(key string, target interface{}) error {
	result, err := s.client.Get(context.Background(), s.getFullKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(result), target)
}

func (s redisSessionStore) Put(key string, value interface{}) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), s.getFullKey(key), bytes, s.ttl).Err()
}

func (s redisSessionStore) GetAndDelete(key string, target interface{}) error {
	result, err := s.client.GetDel(context.Background(), s.getFullKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(result), target)
}

func (s redisSessionStore) getFullKey(key string) string {
	return s.storeName + "." + key
}
