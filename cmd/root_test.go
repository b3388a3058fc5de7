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

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/vcr/test"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	level := logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetLevel(level)
	})
	buf := new(bytes.Buffer)
	command := CreateCommand()
	command.SetOut(buf)
	command.SetErr(buf)
	command.SetArgs(args)
	err := command.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestExecute(t *testing.T) {
	t.Run("prints help", func(t *testing.T) {
		oldStdout := stdOutWriter
		buf := new(bytes.Buffer)
		stdOutWriter = buf
		defer func() {
			stdOutWriter = oldStdout
		}()
		oldArgs := os.Args
		os.Args = []string{"openid4vc"}
		defer func() {
			os.Args = oldArgs
		}()

		err := Execute(context.Background())

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Available Commands")
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		output, err := execute(t, "config")

		require.NoError(t, err)
		assert.Contains(t, output, "verbosity: info")
		assert.Contains(t, output, "prefix: openid4vc")
		assert.Contains(t, output, "timeout: 30s")
	})
	t.Run("flags override defaults", func(t *testing.T) {
		output, err := execute(t, "config", "--verbosity", "debug", "--issuer.identifier", "https://issuer.example.com")

		require.NoError(t, err)
		assert.Contains(t, output, "verbosity: debug")
		assert.Contains(t, output, "identifier: https://issuer.example.com")
		assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	})
	t.Run("config file and environment", func(t *testing.T) {
		configFile := path.Join(t.TempDir(), "openid4vc.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("issuer:\n  identifier: https://file.example.com\nrelyingparty:\n  issuer: https://rp.example.com\n"), 0600))
		t.Setenv("OPENID4VC_RELYINGPARTY_ISSUER", "https://env.example.com")

		output, err := execute(t, "config", "--configfile", configFile)

		require.NoError(t, err)
		assert.Contains(t, output, "identifier: https://file.example.com")
		assert.Contains(t, output, "issuer: https://env.example.com")
	})
	t.Run("invalid verbosity", func(t *testing.T) {
		_, err := execute(t, "config", "--verbosity", "loud")

		assert.ErrorContains(t, err, "not a valid logrus Level")
	})
}

func TestPKCECommand(t *testing.T) {
	t.Run("given verifier", func(t *testing.T) {
		output, err := execute(t, "pkce", "my-verifier")

		require.NoError(t, err)
		assert.Contains(t, output, "code_verifier:         my-verifier")
		assert.Contains(t, output, "code_challenge:        "+crypto.NewPKCEChallenge("my-verifier").CodeChallenge)
		assert.Contains(t, output, "code_challenge_method: S256")
	})
	t.Run("generated verifier", func(t *testing.T) {
		output, err := execute(t, "pkce")

		require.NoError(t, err)
		assert.Contains(t, output, "code_verifier:")
	})
}

func TestDecodeCommand(t *testing.T) {
	party := test.NewParty()
	t.Run("ok", func(t *testing.T) {
		token := party.Sign(map[string]interface{}{"iss": party.DID.String(), "nonce": "n-1"}, nil)

		output, err := execute(t, "decode", token)

		require.NoError(t, err)
		var decoded map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(output), &decoded))
		assert.Equal(t, party.KeyID, decoded["header"]["kid"])
		assert.Equal(t, "ES256", decoded["header"]["alg"])
		assert.Equal(t, "n-1", decoded["claims"]["nonce"])
	})
	t.Run("not a JWT", func(t *testing.T) {
		_, err := execute(t, "decode", "not-a-jwt")

		assert.ErrorIs(t, err, crypto.ErrInvalidJWT)
	})
}

func TestResolveCommand(t *testing.T) {
	t.Run("did:jwk", func(t *testing.T) {
		party := test.NewParty()

		output, err := execute(t, "resolve", party.DID.String())

		require.NoError(t, err)
		assert.Contains(t, output, `"id": "`+party.DID.String()+`"`)
		assert.Contains(t, output, party.KeyID)
	})
	t.Run("did:key", func(t *testing.T) {
		output, err := execute(t, "resolve", "did:key:z6MknCCLeeHBUaHu4aHSVLDCYQW9gjVJ7a63FpMvtuVMy53T")

		require.NoError(t, err)
		assert.Contains(t, output, "did:key:z6MknCCLeeHBUaHu4aHSVLDCYQW9gjVJ7a63FpMvtuVMy53T#z6MknCCLeeHBUaHu4aHSVLDCYQW9gjVJ7a63FpMvtuVMy53T")
	})
	t.Run("unsupported method", func(t *testing.T) {
		_, err := execute(t, "resolve", "did:web:example.com")

		assert.Error(t, err)
	})
	t.Run("invalid DID", func(t *testing.T) {
		_, err := execute(t, "resolve", "not-a-did")

		assert.Error(t, err)
	})
}

func TestOfferCommand(t *testing.T) {
	parseOffer := func(t *testing.T, output string) oauth.CredentialOffer {
		uri, err := url.Parse(strings.TrimSpace(strings.SplitN(output, "\n", 2)[0]))
		require.NoError(t, err)
		var offer oauth.CredentialOffer
		require.NoError(t, json.Unmarshal([]byte(uri.Query().Get(oauth.CredentialOfferParam)), &offer))
		return offer
	}
	t.Run("pre-authorized code", func(t *testing.T) {
		output, err := execute(t, "offer", "--issuer", "https://issuer.example.com", "--type", "VerifiableCredential,VcTest",
			"--pre-authorized-code", "code-1", "--pin")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(output, oauth.CredentialOfferScheme))
		offer := parseOffer(t, output)
		assert.Equal(t, "https://issuer.example.com", offer.CredentialIssuer)
		require.Len(t, offer.Credentials, 1)
		assert.Equal(t, "jwt_vc_json", offer.Credentials[0].Format)
		assert.Equal(t, []string{"VerifiableCredential", "VcTest"}, offer.Credentials[0].Types)
		require.NotNil(t, offer.Grants)
		require.NotNil(t, offer.Grants.PreAuthorizedCode)
		assert.Equal(t, "code-1", offer.Grants.PreAuthorizedCode.PreAuthorizedCode)
		assert.True(t, offer.Grants.PreAuthorizedCode.UserPinRequired)
		assert.Nil(t, offer.Grants.AuthorizationCode)
	})
	t.Run("authorization code with issuer from config", func(t *testing.T) {
		output, err := execute(t, "offer", "--issuer.identifier", "https://config.example.com")

		require.NoError(t, err)
		offer := parseOffer(t, output)
		assert.Equal(t, "https://config.example.com", offer.CredentialIssuer)
		require.NotNil(t, offer.Grants.AuthorizationCode)
		assert.NotEmpty(t, offer.Grants.AuthorizationCode.IssuerState)
		assert.Nil(t, offer.Grants.PreAuthorizedCode)
	})
	t.Run("QR code", func(t *testing.T) {
		output, err := execute(t, "offer", "--issuer", "https://issuer.example.com", "--qr")

		require.NoError(t, err)
		assert.Greater(t, strings.Count(output, "\n"), 10)
	})
	t.Run("issuer flag takes precedence over issuer.identifier", func(t *testing.T) {
		output, err := execute(t, "offer", "--issuer", "https://flag.example.com", "--issuer.identifier", "https://config.example.com")

		require.NoError(t, err)
		assert.Equal(t, "https://flag.example.com", parseOffer(t, output).CredentialIssuer)
	})
	t.Run("issuer is required", func(t *testing.T) {
		_, err := execute(t, "offer")

		assert.EqualError(t, err, "credential issuer is required (--issuer or issuer.identifier)")
	})
}

func TestConfigFlags(t *testing.T) {
	command := createRootCommand()
	command.AddCommand(createOfferCommand())
	offer, _, err := command.Find([]string{"offer"})
	require.NoError(t, err)
	require.NoError(t, offer.ParseFlags([]string{"--issuer", "https://issuer.example.com", "--verbosity", "trace"}))

	flags := configFlags(offer)

	assert.Nil(t, flags.Lookup("issuer"))
	assert.Nil(t, flags.Lookup("qr"))
	require.NotNil(t, flags.Lookup("verbosity"))
	assert.True(t, flags.Lookup("verbosity").Changed)
	config, err := core.LoadConfig(flags)
	require.NoError(t, err)
	assert.Equal(t, "trace", config.Verbosity)
}

func TestDefinitionCommand(t *testing.T) {
	definitionsFile := path.Join(t.TempDir(), "definitions.json")
	require.NoError(t, os.WriteFile(definitionsFile, []byte(`{"eu.europa.ec.euid": {"id": "pid", "input_descriptors": [{"id": "1"}]}}`), 0600))
	t.Run("ok", func(t *testing.T) {
		output, err := execute(t, "definition", "eu.europa.ec.euid", "--relyingparty.definitionsfile", definitionsFile)

		require.NoError(t, err)
		assert.Contains(t, output, `"id": "pid"`)
	})
	t.Run("unknown scope", func(t *testing.T) {
		_, err := execute(t, "definition", "other", "--relyingparty.definitionsfile", definitionsFile)

		assert.EqualError(t, err, "no presentation definition for scope: other")
	})
	t.Run("not configured", func(t *testing.T) {
		_, err := execute(t, "definition", "eu.europa.ec.euid")

		assert.EqualError(t, err, "no presentation definitions configured (relyingparty.definitionsfile)")
	})
}

func TestStorageCheckCommand(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		output, err := execute(t, "storage-check")

		require.NoError(t, err)
		assert.Contains(t, output, "session database OK")
	})
	t.Run("redis", func(t *testing.T) {
		redis := miniredis.RunT(t)

		output, err := execute(t, "storage-check", "--storage.redis.address", redis.Addr())

		require.NoError(t, err)
		assert.Contains(t, output, "session database OK")
		assert.Empty(t, redis.Keys())
	})
	t.Run("bbolt", func(t *testing.T) {
		output, err := execute(t, "storage-check", "--storage.bbolt.path", path.Join(t.TempDir(), "sessions.db"))

		require.NoError(t, err)
		assert.Contains(t, output, "session database OK")
	})
	t.Run("redis unreachable", func(t *testing.T) {
		_, err := execute(t, "storage-check", "--storage.redis.address", "localhost:1")

		assert.ErrorContains(t, err, "unable to connect to Redis")
	})
}
