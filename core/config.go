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
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const defaultPrefix = "OPENID4VC_"
const defaultDelimiter = "."
const configValueListSeparator = ","

// ConfigFileFlag is the name of the flag that points to the YAML config file.
const ConfigFileFlag = "configfile"

const defaultConfigFile = "openid4vc.yaml"

// Config holds the configuration shared by the issuer, relying party and the collaborators backing them.
type Config struct {
	Verbosity    string             `koanf:"verbosity" yaml:"verbosity"`
	Issuer       IssuerConfig       `koanf:"issuer" yaml:"issuer"`
	RelyingParty RelyingPartyConfig `koanf:"relyingparty" yaml:"relyingparty"`
	HTTP         HTTPConfig         `koanf:"http" yaml:"http"`
	Storage      StorageConfig      `koanf:"storage" yaml:"storage"`
}

// IssuerConfig configures the credential issuer.
type IssuerConfig struct {
	// Identifier is the credential_issuer identifier (URL), used as expected audience of proofs and access tokens.
	Identifier string `koanf:"identifier" yaml:"identifier"`
	// DID is the DID that is set as issuer of the credentials.
	DID string `koanf:"did" yaml:"did"`
}

// RelyingPartyConfig configures the relying party (authorization server).
type RelyingPartyConfig struct {
	// Issuer is the identifier of the relying party, used as client_id in requests and as expected audience.
	Issuer string `koanf:"issuer" yaml:"issuer"`
	// GrantTypes lists the grant types that are accepted on token requests.
	GrantTypes []string `koanf:"granttypes" yaml:"granttypes"`
	// DefinitionsFile is a JSON file mapping OAuth2 scopes to presentation definitions.
	DefinitionsFile string `koanf:"definitionsfile" yaml:"definitionsfile"`
}

// HTTPConfig configures outbound HTTP calls (JWK sets, JSON schemas).
type HTTPConfig struct {
	Timeout    time.Duration `koanf:"timeout" yaml:"timeout"`
	StrictMode bool          `koanf:"strictmode" yaml:"strictmode"`
	// Retries is the number of attempts for a single fetch. 1 means no retries.
	Retries uint `koanf:"retries" yaml:"retries"`
	// RateLimit is the maximum number of outbound requests per second, 0 disables limiting.
	RateLimit float64 `koanf:"ratelimit" yaml:"ratelimit"`
}

// StorageConfig selects and configures the session database.
type StorageConfig struct {
	Redis RedisConfig `koanf:"redis" yaml:"redis"`
	BBolt BBoltConfig `koanf:"bbolt" yaml:"bbolt"`
}

// RedisConfig configures the Redis session database. It's used when Address is set.
type RedisConfig struct {
	Address  string `koanf:"address" yaml:"address"`
	Password string `koanf:"password" yaml:"password,omitempty"`
	Database int    `koanf:"database" yaml:"database"`
	Prefix   string `koanf:"prefix" yaml:"prefix"`
}

// BBoltConfig configures the file-backed session database. It's used when Path is set and Redis is not configured.
type BBoltConfig struct {
	Path string `koanf:"path" yaml:"path"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{
		Verbosity: "info",
		RelyingParty: RelyingPartyConfig{
			GrantTypes: []string{"authorization_code", "urn:ietf:params:oauth:grant-type:pre-authorized_code"},
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			StrictMode: true,
			Retries:    1,
		},
		Storage: StorageConfig{
			Redis: RedisConfig{Prefix: "openid4vc"},
		},
	}
}

// FlagSet returns the flags that can be used to override configuration.
func FlagSet() *pflag.FlagSet {
	defs := DefaultConfig()
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	flags.String(ConfigFileFlag, defaultConfigFile, "Config file path (YAML)")
	flags.String("verbosity", defs.Verbosity, "Log level (trace, debug, info, warn, error)")
	flags.String("issuer.identifier", defs.Issuer.Identifier, "Credential issuer identifier, used as audience for proofs and access tokens")
	flags.String("issuer.did", defs.Issuer.DID, "DID of the credential issuer")
	flags.String("relyingparty.issuer", defs.RelyingParty.Issuer, "Identifier of the relying party")
	flags.StringSlice("relyingparty.granttypes", defs.RelyingParty.GrantTypes, "Supported grant types")
	flags.String("relyingparty.definitionsfile", defs.RelyingParty.DefinitionsFile, "JSON file mapping scopes to presentation definitions")
	flags.Duration("http.timeout", defs.HTTP.Timeout, "Timeout for outbound HTTP requests")
	flags.Bool("http.strictmode", defs.HTTP.StrictMode, "Only allow outbound HTTPS requests")
	flags.Uint("http.retries", defs.HTTP.Retries, "Number of attempts for outbound fetches")
	flags.Float64("http.ratelimit", defs.HTTP.RateLimit, "Maximum outbound requests per second, 0 disables limiting")
	flags.String("storage.redis.address", defs.Storage.Redis.Address, "Redis address (host:port), enables the Redis session database")
	flags.String("storage.redis.prefix", defs.Storage.Redis.Prefix, "Prefix for Redis keys")
	flags.Int("storage.redis.database", defs.Storage.Redis.Database, "Redis database number")
	flags.String("storage.bbolt.path", defs.Storage.BBolt.Path, "BBolt database file, enables the BBolt session database")
	return flags
}

// LoadConfig loads the configuration from defaults, the config file, environment variables and flags (in that order).
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	configMap := koanf.New(defaultDelimiter)
	if err := configMap.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, err
	}
	if err := loadFromFile(configMap, resolveConfigFilePath(flags)); err != nil {
		return nil, err
	}
	if err := loadFromEnv(configMap); err != nil {
		return nil, err
	}
	if err := loadFromFlagSet(configMap, flags); err != nil {
		return nil, err
	}
	result := &Config{}
	if err := configMap.UnmarshalWithConf("", result, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	return result, nil
}

func resolveConfigFilePath(flags *pflag.FlagSet) string {
	if flags == nil {
		return defaultConfigFile
	}
	path, err := flags.GetString(ConfigFileFlag)
	if err != nil {
		return defaultConfigFile
	}
	return path
}

func loadFromFile(configMap *koanf.Koanf, filepath string) error {
	if filepath == "" {
		return nil
	}
	if err := configMap.Load(file.Provider(filepath), yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func loadFromEnv(configMap *koanf.Koanf) error {
	e := env.ProviderWithValue(defaultPrefix, defaultDelimiter, func(rawKey string, rawValue string) (string, interface{}) {
		key := strings.Replace(strings.ToLower(strings.TrimPrefix(rawKey, defaultPrefix)), "_", defaultDelimiter, -1)

		// Support multiple values separated by a comma
		if strings.Contains(rawValue, configValueListSeparator) {
			values := strings.Split(rawValue, configValueListSeparator)
			for i, value := range values {
				values[i] = strings.TrimSpace(value)
			}
			return key, values
		}

		return key, rawValue
	})
	// errors can't occur for this provider
	return configMap.Load(e, nil)
}

func loadFromFlagSet(configMap *koanf.Koanf, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	return configMap.Load(posflag.Provider(flags, defaultDelimiter, configMap), nil)
}
