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

package oauth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	t.Run("code only", func(t *testing.T) {
		assert.EqualError(t, Error{Code: InvalidRequest}, "invalid_request")
	})
	t.Run("with description", func(t *testing.T) {
		assert.EqualError(t, InvalidProofError("nonce mismatch"), "invalid_proof - nonce mismatch")
	})
	t.Run("with internal error", func(t *testing.T) {
		err := InvalidTokenError("invalid access token").WithCause(errors.New("expired"))

		assert.EqualError(t, err, "invalid_token - invalid access token (expired)")
	})
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", InvalidGrantError("invalid parameters"))

	assert.ErrorIs(t, err, Error{Code: InvalidGrant})
	assert.ErrorIs(t, err, &Error{Code: InvalidGrant})
	assert.NotErrorIs(t, err, Error{Code: InvalidRequest})
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("cause")

	err := InternalError("failed").WithCause(cause)

	assert.ErrorIs(t, err, cause)
}

func TestError_RFCResponse(t *testing.T) {
	t.Run("status recommended", func(t *testing.T) {
		response := InvalidTokenError("expired").RFCResponse()

		assert.Equal(t, http.StatusUnauthorized, response.Status)
		assert.Equal(t, InvalidToken, response.Body.Error)
		assert.Equal(t, "expired", response.Body.ErrorDescription)
	})
	t.Run("no status recommended", func(t *testing.T) {
		assert.Equal(t, 0, AccessDeniedError("denied").RFCResponse().Status)
		assert.Equal(t, 0, UnsupportedResponseTypeError("x").RFCResponse().Status)
		assert.Equal(t, 0, VPFormatsNotSupportedError("x").RFCResponse().Status)
	})
}

func TestNewError_StatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, InternalError("x").StatusCode)
	assert.Equal(t, http.StatusInternalServerError, InsufficientParameters("x").StatusCode)
	assert.Equal(t, http.StatusBadRequest, InvalidDataProvided("x").StatusCode)
	assert.Equal(t, http.StatusForbidden, InsufficientScopeError("x").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, InvalidClientError("x").StatusCode)
	assert.Equal(t, http.StatusBadRequest, InvalidCredentialRequestError("x").StatusCode)
}
