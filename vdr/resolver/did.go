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

package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/vdr/log"
)

// DIDResolver is the interface for DID resolvers: the process of getting the backing document of a DID.
type DIDResolver interface {
	// Resolve returns the DID Document for the provided DID.
	// It returns ErrNotFound if there is no corresponding DID document.
	Resolve(ctx context.Context, id did.DID) (*did.Document, error)
}

// ErrDIDMethodNotSupported is returned when a DID method is not supported by the DID resolver
var ErrDIDMethodNotSupported = errors.New("DID method not supported")

// ErrNotFound The DID resolver was unable to find the DID document resulting from this resolution request.
var ErrNotFound = errors.New("unable to find the DID document")

// ErrInvalidDID is returned when a DID can't be derived from a key ID or issuer.
var ErrInvalidDID = errors.New("Can't extract did from \"kid\" parameter")

var _ DIDResolver = &Router{}

// Router is a DID resolver that routes to different DID resolvers based on the DID method.
type Router struct {
	resolvers sync.Map
}

// NewRouter creates a Router with the given resolvers, keyed by DID method (e.g. "key", "jwk").
func NewRouter(resolvers map[string]DIDResolver) *Router {
	result := &Router{}
	for method, resolver := range resolvers {
		result.Register(method, resolver)
	}
	return result
}

// Resolve looks up the right resolver for the given DID and delegates the resolution to it.
// If no resolver is registered for the given DID method, ErrDIDMethodNotSupported is returned.
func (r *Router) Resolve(ctx context.Context, id did.DID) (*did.Document, error) {
	didResolver, registered := r.resolvers.Load(id.Method)
	if !registered {
		log.Logger().
			WithField(core.LogFieldDID, id.String()).
			Debug("No resolver registered for DID method")
		return nil, ErrDIDMethodNotSupported
	}
	document, err := didResolver.(DIDResolver).Resolve(ctx, id)
	if err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldDID, id.String()).
			Debug("Unable to resolve DID")
		return nil, err
	}
	return document, nil
}

// Register registers a DID resolver for the given DID method.
func (r *Router) Register(method string, resolver DIDResolver) {
	r.resolvers.Store(method, resolver)
}

// DIDFromURL returns the DID from the given URL, stripping any query parameters, path segments and fragments.
func DIDFromURL(didURL string) (did.DID, error) {
	parsed, err := did.ParseDIDURL(didURL)
	if err != nil {
		return did.DID{}, err
	}
	return parsed.DID, nil
}

// ObtainDID derives the DID of the signer of a token from the iss claim (if it's a DID) or from the kid header.
// The fragment of the kid (identifying the key) is stripped.
func ObtainDID(kid string, iss string) (string, error) {
	if strings.HasPrefix(iss, "did") {
		return iss, nil
	}
	if !strings.HasPrefix(kid, "did") {
		return "", ErrInvalidDID
	}
	return strings.SplitN(strings.TrimSpace(kid), "#", 2)[0], nil
}

// SameDID returns true if both identifiers refer to the same DID, ignoring any fragment (key reference).
func SameDID(a string, b string) bool {
	return strings.SplitN(a, "#", 2)[0] == strings.SplitN(b, "#", 2)[0]
}
