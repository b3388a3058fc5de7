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
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	bolt "go.etcd.io/bbolt"
)

// NewTestInMemorySessionDatabase creates an in-memory session database that is closed when the test finishes.
func NewTestInMemorySessionDatabase(t testing.TB) *InMemorySessionDatabase {
	db := NewInMemorySessionDatabase()
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// NewTestRedisSessionDatabase creates a session database backed by an in-process Redis server (miniredis),
// which is returned so tests can manipulate time.
func NewTestRedisSessionDatabase(t testing.TB) (SessionDatabase, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	db := NewRedisSessionDatabase(redis.NewClient(&redis.Options{Addr: server.Addr()}), "test")
	t.Cleanup(func() {
		db.Close()
	})
	return db, server
}

// NewTestBBoltSessionDatabase creates a BBolt session database in a temporary directory.
func NewTestBBoltSessionDatabase(t testing.TB) *BBoltSessionDatabase {
	db, err := bolt.Open(filepath.Join(t.TempDir(), "sessions.db"), fileMode, &bolt.Options{NoSync: true, NoFreelistSync: true, NoGrowSync: true})
	if err != nil {
		t.Fatal(err)
	}
	result := NewBBoltSessionDatabase(db)
	t.Cleanup(func() {
		result.Close()
	})
	return result
}
