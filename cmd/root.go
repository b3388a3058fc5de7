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

// Package cmd contains the openid4vc command line interface.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/storage"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
	"github.com/nuts-foundation/openid4vc/vcr/pe"
	"github.com/nuts-foundation/openid4vc/vdr/didjwk"
	"github.com/nuts-foundation/openid4vc/vdr/didkey"
	"github.com/nuts-foundation/openid4vc/vdr/resolver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var stdOutWriter io.Writer = os.Stdout

type configKey struct{}

func createRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:           "openid4vc",
		Short:         "Tooling for OpenID for Verifiable Credentials: credential offers, PKCE, JWT and DID inspection.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config, err := core.LoadConfig(configFlags(cmd))
			if err != nil {
				return fmt.Errorf("unable to load config: %w", err)
			}
			level, err := logrus.ParseLevel(config.Verbosity)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, config))
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
	command.PersistentFlags().AddFlagSet(core.FlagSet())
	return command
}

// configFlags returns the flags of the command that map to configuration keys.
// Command-specific flags (e.g. offer's --issuer) are left out, so they can't shadow a config key.
func configFlags(cmd *cobra.Command) *pflag.FlagSet {
	result := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	core.FlagSet().VisitAll(func(configFlag *pflag.Flag) {
		if flag := cmd.Flags().Lookup(configFlag.Name); flag != nil {
			result.AddFlag(flag)
		}
	})
	return result
}

func configFrom(cmd *cobra.Command) *core.Config {
	if config, ok := cmd.Context().Value(configKey{}).(*core.Config); ok {
		return config
	}
	config := core.DefaultConfig()
	return &config
}

func createPrintConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(configFrom(cmd))
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
}

func createPKCECommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pkce [verifier]",
		Short: "Prints a PKCE code verifier and its S256 code challenge. A verifier is generated if none is given.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			verifier := ""
			if len(args) == 1 {
				verifier = args[0]
			}
			challenge := crypto.NewPKCEChallenge(verifier)
			cmd.Printf("code_verifier:         %s\n", challenge.CodeVerifier)
			cmd.Printf("code_challenge:        %s\n", challenge.CodeChallenge)
			cmd.Printf("code_challenge_method: %s\n", challenge.Method)
		},
	}
}

func createDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [jwt]",
		Short: "Prints the header and claims of a JWT. The signature is NOT verified.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := crypto.ParseUnverified(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"header": token.Header,
				"claims": token.Claims,
			})
		},
	}
}

func createResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [did]",
		Short: "Resolves a did:key or did:jwk DID and prints its DID document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := did.ParseDID(args[0])
			if err != nil {
				return err
			}
			document, err := newDIDResolver().Resolve(cmd.Context(), *id)
			if err != nil {
				return err
			}
			return printJSON(cmd, document)
		},
	}
}

func newDIDResolver() resolver.DIDResolver {
	return resolver.NewRouter(map[string]resolver.DIDResolver{
		didkey.MethodName: didkey.NewResolver(),
		didjwk.MethodName: didjwk.NewResolver(),
	})
}

func createOfferCommand() *cobra.Command {
	var (
		issuer            string
		types             []string
		format            string
		preAuthorizedCode string
		pinRequired       bool
		printQR           bool
	)
	command := &cobra.Command{
		Use:   "offer",
		Short: "Prints a credential offer URI for a wallet",
		Long: "Prints a credential offer URI for a wallet. The offer contains a pre-authorized_code grant if --pre-authorized-code or --pin is given, " +
			"otherwise an authorization_code grant with a random issuer_state.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if issuer == "" {
				issuer = configFrom(cmd).Issuer.Identifier
			}
			if issuer == "" {
				return fmt.Errorf("credential issuer is required (--issuer or issuer.identifier)")
			}
			offer := oauth.NewCredentialOffer(issuer).AddCredential(format, types...)
			if preAuthorizedCode != "" || pinRequired {
				offer.WithPreAuthorizedCodeGrant(preAuthorizedCode, pinRequired)
			} else {
				offer.WithAuthorizationCodeGrant("")
			}
			uri, err := offer.URI()
			if err != nil {
				return err
			}
			cmd.Println(uri)
			if printQR {
				qrterminal.GenerateWithConfig(uri, qrterminal.Config{
					HalfBlocks: false,
					BlackChar:  qrterminal.WHITE,
					WhiteChar:  qrterminal.BLACK,
					Level:      qrterminal.M,
					Writer:     cmd.OutOrStdout(),
					QuietZone:  1,
				})
			}
			return nil
		},
	}
	command.Flags().StringVar(&issuer, "issuer", "", "Credential issuer identifier, defaults to issuer.identifier")
	command.Flags().StringSliceVar(&types, "type", []string{"VerifiableCredential"}, "Credential types")
	command.Flags().StringVar(&format, "format", string(credential.JWTVCJSONFormat), "Credential format")
	command.Flags().StringVar(&preAuthorizedCode, "pre-authorized-code", "", "Pre-authorized code, generated if --pin is given without code")
	command.Flags().BoolVar(&pinRequired, "pin", false, "Require a user PIN for the pre-authorized_code grant")
	command.Flags().BoolVar(&printQR, "qr", false, "Also print the offer as QR code")
	return command
}

func createDefinitionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "definition [scope]",
		Short: "Prints the presentation definition the relying party requests for the given scope (relyingparty.definitionsfile)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := configFrom(cmd).RelyingParty.DefinitionsFile
			if filename == "" {
				return fmt.Errorf("no presentation definitions configured (relyingparty.definitionsfile)")
			}
			definitions := pe.DefinitionResolver{}
			if err := definitions.LoadFromFile(filename); err != nil {
				return err
			}
			definition := definitions.ByScope(args[0])
			if definition == nil {
				return fmt.Errorf("no presentation definition for scope: %s", args[0])
			}
			return printJSON(cmd, definition)
		},
	}
}

func createStorageCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "storage-check",
		Short: "Connects to the configured session database and writes, reads and deletes a probe entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := storage.NewSessionDatabase(cmd.Context(), configFrom(cmd).Storage)
			if err != nil {
				return err
			}
			defer db.Close()
			store := db.GetStore(time.Minute, "cli", "probe")
			if err := store.Put("probe", "ok"); err != nil {
				return fmt.Errorf("unable to write to session database: %w", err)
			}
			var value string
			if err := store.GetAndDelete("probe", &value); err != nil {
				return fmt.Errorf("unable to read from session database: %w", err)
			}
			cmd.Println("session database OK")
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

// CreateCommand creates the root command with all subcommands.
func CreateCommand() *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	command.AddCommand(
		createPrintConfigCommand(),
		createPKCECommand(),
		createDecodeCommand(),
		createResolveCommand(),
		createOfferCommand(),
		createDefinitionCommand(),
		createStorageCheckCommand(),
	)
	return command
}

// Execute executes the root command with the arguments of the process.
func Execute(ctx context.Context) error {
	return CreateCommand().ExecuteContext(ctx)
}
