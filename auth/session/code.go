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

package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/nuts-foundation/openid4vc/auth/oauth"
	"github.com/nuts-foundation/openid4vc/auth/relyingparty"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/storage"
)

var _ relyingparty.AuthorizationCodeVerifier = (*AuthorizationCodeStore)(nil)
var _ relyingparty.CodeVerifierVerifier = (*AuthorizationCodeStore)(nil)
var _ relyingparty.PreAuthorizedCodeVerifier = (*PreAuthorizedCodeStore)(nil)

// AuthorizationCodeExpiration is the lifetime of authorization codes and pre-authorized codes.
const AuthorizationCodeExpiration = 10 * time.Minute

var (
	// ErrUnknownCode is returned when a code was never issued, has expired or was already used.
	ErrUnknownCode = errors.New("unknown or expired code")
	// ErrCodeNotIssuedToClient is returned when a code is redeemed by another client than it was issued to.
	ErrCodeNotIssuedToClient = errors.New("code was not issued to the client")
	// ErrNoCodeChallenge is returned when a code_verifier is presented for a client without pending code challenge.
	ErrNoCodeChallenge = errors.New("no code_challenge registered for the client")
	// ErrCodeVerifierMismatch is returned when the code_verifier doesn't match the code_challenge.
	ErrCodeVerifierMismatch = errors.New("code_verifier does not match code_challenge")
	// ErrInvalidPIN is returned when the user PIN of a pre-authorized code is missing or incorrect.
	ErrInvalidPIN = errors.New("invalid user PIN")
)

type authorizationCode struct {
	ClientID            string `json:"client_id"`
	CodeChallenge       string `json:"code_challenge,omitempty"`
	CodeChallengeMethod string `json:"code_challenge_method,omitempty"`
}

// AuthorizationCodeStore keeps the authorization codes handed out in authorization responses, with the PKCE challenge
// of the authorization request. A code can be redeemed once, after which its challenge awaits the code_verifier
// of the same token request.
type AuthorizationCodeStore struct {
	codes      storage.SessionStore
	challenges storage.SessionStore
}

// NewAuthorizationCodeStore creates an AuthorizationCodeStore on the given session database.
func NewAuthorizationCodeStore(db storage.SessionDatabase) *AuthorizationCodeStore {
	return &AuthorizationCodeStore{
		codes:      db.GetStore(AuthorizationCodeExpiration, "oauth", "code"),
		challenges: db.GetStore(AuthorizationCodeExpiration, "oauth", "code_challenge"),
	}
}

// RegisterCode generates an authorization code for the client of a verified authorization request.
func (s *AuthorizationCodeStore) RegisterCode(request oauth.AuthzRequest) (string, error) {
	code := crypto.GenerateNonce()
	err := s.codes.Put(code, authorizationCode{
		ClientID:            request.ClientID,
		CodeChallenge:       request.CodeChallenge,
		CodeChallengeMethod: request.CodeChallengeMethod,
	})
	if err != nil {
		return "", fmt.Errorf("unable to store authorization code: %w", err)
	}
	return code, nil
}

// VerifyAuthorizationCode redeems the code, which must have been issued to the client.
func (s *AuthorizationCodeStore) VerifyAuthorizationCode(_ context.Context, clientID string, code string) error {
	var entry authorizationCode
	if err := s.codes.GetAndDelete(code, &entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.WrapError(ErrUnknownCode, err)
		}
		return err
	}
	if entry.ClientID != clientID {
		return ErrCodeNotIssuedToClient
	}
	if entry.CodeChallenge == "" {
		return nil
	}
	return s.challenges.Put(clientID, entry)
}

// VerifyCodeVerifier checks the code_verifier against the challenge of the code the client just redeemed.
func (s *AuthorizationCodeStore) VerifyCodeVerifier(_ context.Context, clientID string, codeVerifier string) error {
	var entry authorizationCode
	if err := s.challenges.GetAndDelete(clientID, &entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.WrapError(ErrNoCodeChallenge, err)
		}
		return err
	}
	if !crypto.VerifyPKCE(codeVerifier, entry.CodeChallenge, entry.CodeChallengeMethod) {
		return ErrCodeVerifierMismatch
	}
	return nil
}

type preAuthorizedCode struct {
	ClientID string `json:"client_id,omitempty"`
	PIN      string `json:"pin,omitempty"`
}

// PreAuthorizedCodeStore keeps the pre-authorized codes of credential offers.
type PreAuthorizedCodeStore struct {
	codes storage.SessionStore
}

// NewPreAuthorizedCodeStore creates a PreAuthorizedCodeStore on the given session database.
func NewPreAuthorizedCodeStore(db storage.SessionDatabase) *PreAuthorizedCodeStore {
	return &PreAuthorizedCodeStore{
		codes: db.GetStore(AuthorizationCodeExpiration, "openid4vci", "pre-authorized_code"),
	}
}

// RegisterCode generates a pre-authorized code. clientID binds the code to a client, if empty any client can redeem it.
// If pin is not empty, the wallet must present it in the token request.
func (s *PreAuthorizedCodeStore) RegisterCode(clientID string, pin string) (string, error) {
	code := crypto.GenerateNonce()
	if err := s.codes.Put(code, preAuthorizedCode{ClientID: clientID, PIN: pin}); err != nil {
		return "", fmt.Errorf("unable to store pre-authorized code: %w", err)
	}
	return code, nil
}

// VerifyPreAuthorizedCode redeems the code and returns the client the access token is issued to.
// A code presented with a wrong PIN is consumed as well.
func (s *PreAuthorizedCodeStore) VerifyPreAuthorizedCode(_ context.Context, clientID string, code string, pin string) (string, error) {
	var entry preAuthorizedCode
	if err := s.codes.GetAndDelete(code, &entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", core.WrapError(ErrUnknownCode, err)
		}
		return "", err
	}
	if entry.PIN != "" && subtle.ConstantTimeCompare([]byte(entry.PIN), []byte(pin)) != 1 {
		return "", ErrInvalidPIN
	}
	if entry.ClientID == "" {
		return clientID, nil
	}
	if clientID != "" && clientID != entry.ClientID {
		return "", ErrCodeNotIssuedToClient
	}
	return entry.ClientID, nil
}
