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
	"errors"
	"fmt"
	"time"

	"github.com/nuts-foundation/openid4vc/auth/log"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/crypto"
	"github.com/nuts-foundation/openid4vc/storage"
	"github.com/nuts-foundation/openid4vc/vcr/credential"
	"github.com/nuts-foundation/openid4vc/vcr/issuer"
)

var _ issuer.DeferredExchanger = (*DeferredCredentialStore)(nil)

// DeferredCredentialExpiration is the time a wallet has to exchange an acceptance token.
const DeferredCredentialExpiration = 24 * time.Hour

// ErrUnknownAcceptanceToken is returned when an acceptance token was never issued, has expired or was already exchanged.
var ErrUnknownAcceptanceToken = errors.New("unknown or expired acceptance token")

type deferredStatus string

const (
	deferredPending deferredStatus = "pending"
	deferredReady   deferredStatus = "ready"
	deferredFailed  deferredStatus = "failed"
)

type deferredCredential struct {
	Status deferredStatus                   `json:"status"`
	Types  []string                         `json:"types"`
	Format credential.FormatID              `json:"format"`
	Data   *issuer.CredentialDataOrDeferred `json:"data,omitempty"`
	Reason string                           `json:"reason,omitempty"`
}

// DeferredCredentialStore keeps track of deferred issuances under their acceptance token (the deferred code).
// A deferred issuance is pending until the issuer completes or fails it.
type DeferredCredentialStore struct {
	entries storage.SessionStore
}

// NewDeferredCredentialStore creates a DeferredCredentialStore on the given session database.
func NewDeferredCredentialStore(db storage.SessionDatabase) *DeferredCredentialStore {
	return &DeferredCredentialStore{
		entries: db.GetStore(DeferredCredentialExpiration, "openid4vci", "deferred"),
	}
}

// Defer registers a pending issuance of a credential of the given types and format, and returns its acceptance token.
func (s *DeferredCredentialStore) Defer(types []string, format credential.FormatID) (string, error) {
	acceptanceToken := crypto.GenerateNonce()
	if err := s.entries.Put(acceptanceToken, deferredCredential{Status: deferredPending, Types: types, Format: format}); err != nil {
		return "", fmt.Errorf("unable to store deferred credential: %w", err)
	}
	return acceptanceToken, nil
}

// Complete marks the issuance as ready, with the given credential data.
func (s *DeferredCredentialStore) Complete(acceptanceToken string, data issuer.CredentialDataOrDeferred) error {
	return s.update(acceptanceToken, func(entry *deferredCredential) {
		entry.Status = deferredReady
		entry.Data = &data
	})
}

// Fail marks the issuance as failed, the reason is returned to the wallet when it exchanges the acceptance token.
func (s *DeferredCredentialStore) Fail(acceptanceToken string, reason string) error {
	if reason == "" {
		reason = "credential issuance failed"
	}
	return s.update(acceptanceToken, func(entry *deferredCredential) {
		entry.Status = deferredFailed
		entry.Reason = reason
	})
}

func (s *DeferredCredentialStore) update(acceptanceToken string, fn func(entry *deferredCredential)) error {
	var entry deferredCredential
	if err := s.entries.Get(acceptanceToken, &entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.WrapError(ErrUnknownAcceptanceToken, err)
		}
		return err
	}
	if entry.Status != deferredPending {
		return fmt.Errorf("deferred credential is already %s", entry.Status)
	}
	fn(&entry)
	return s.entries.Put(acceptanceToken, entry)
}

// ExchangeAcceptanceToken returns the data of a completed issuance, or the acceptance token again if it's still pending.
// Completed and failed issuances can be exchanged once.
func (s *DeferredCredentialStore) ExchangeAcceptanceToken(_ context.Context, acceptanceToken string) (*issuer.DeferredResult, error) {
	var entry deferredCredential
	if err := s.entries.Get(acceptanceToken, &entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, core.WrapError(ErrUnknownAcceptanceToken, err)
		}
		return nil, err
	}
	result := &issuer.DeferredResult{Types: entry.Types, Format: entry.Format}
	if entry.Status == deferredPending {
		result.DeferredCode = acceptanceToken
		return result, nil
	}
	if err := s.entries.GetAndDelete(acceptanceToken, &entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, core.WrapError(ErrUnknownAcceptanceToken, err)
		}
		return nil, err
	}
	switch entry.Status {
	case deferredReady:
		log.Logger().
			WithField(core.LogFieldCredentialType, entry.Types).
			Debug("Deferred credential exchanged")
		result.CredentialDataOrDeferred = *entry.Data
		return result, nil
	default:
		return nil, errors.New(entry.Reason)
	}
}
