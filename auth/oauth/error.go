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
	"fmt"
	"net/http"
)

// ErrorCode specifies error codes as defined by the OAuth2, OpenID4VCI and OpenID4VP specifications.
type ErrorCode string

const (
	// InvalidRequest is returned when the request is missing a required parameter, includes an invalid parameter value
	// or is otherwise malformed.
	InvalidRequest ErrorCode = "invalid_request"
	// AccessDenied is returned when the resource owner or authorization server denied the request.
	AccessDenied ErrorCode = "access_denied"
	// InvalidClient is returned when client authentication failed.
	InvalidClient ErrorCode = "invalid_client"
	// InvalidGrant is returned when the provided authorization grant (e.g. authorization code, pre-authorized code)
	// is invalid, expired or revoked.
	InvalidGrant ErrorCode = "invalid_grant"
	// UnauthorizedClient is returned when the client is not authorized to request an authorization code or token.
	UnauthorizedClient ErrorCode = "unauthorized_client"
	// UnsupportedGrantType is returned when the authorization server does not support the requested grant type.
	UnsupportedGrantType ErrorCode = "unsupported_grant_type"
	// InvalidScope is returned when the requested scope is invalid, unknown, or malformed.
	InvalidScope ErrorCode = "invalid_scope"
	// InvalidToken is returned when the access token (or another token presented) is expired, revoked or malformed.
	InvalidToken ErrorCode = "invalid_token"
	// InsufficientScope is returned when the request requires higher privileges than provided by the access token.
	InsufficientScope ErrorCode = "insufficient_scope"
	// InvalidCredentialRequest is returned when the Credential Request is missing a parameter, or it is malformed.
	InvalidCredentialRequest ErrorCode = "invalid_credential_request"
	// UnsupportedCredentialType is returned when the credential issuer does not support the requested credential type.
	UnsupportedCredentialType ErrorCode = "unsupported_credential_type"
	// UnsupportedCredentialFormat is returned when the credential issuer does not support the requested credential format.
	UnsupportedCredentialFormat ErrorCode = "unsupported_credential_format"
	// InvalidProof is returned when the Credential Request did not contain a proof,
	// or proof was invalid, i.e. it was not bound to a Credential Issuer provided nonce
	InvalidProof ErrorCode = "invalid_proof"
	// UnsupportedResponseType is returned when the authorization server does not support the requested response type.
	UnsupportedResponseType ErrorCode = "unsupported_response_type"
	// VPFormatsNotSupported is returned when the wallet does not support any of the formats requested by the verifier.
	VPFormatsNotSupported ErrorCode = "vp_formats_not_supported"
	// ServerError is returned for internal errors: unimplemented features or collaborators violating their contract.
	ServerError ErrorCode = "server_error"
	// InsufficientParametersCode is returned when an operation requires an optional collaborator that was not provided.
	InsufficientParametersCode ErrorCode = "insufficient_parameters"
	// InvalidDataProvidedCode is returned when caller provided data (e.g. credential timestamps) is malformed.
	InvalidDataProvidedCode ErrorCode = "invalid_data_provided"
)

// statusCodes maps error codes to the recommended HTTP status code.
// Codes that are missing have no recommended status (e.g. because they are returned through a redirect).
var statusCodes = map[ErrorCode]int{
	InvalidRequest:              http.StatusBadRequest,
	InvalidClient:               http.StatusUnauthorized,
	InvalidGrant:                http.StatusBadRequest,
	UnauthorizedClient:          http.StatusBadRequest,
	UnsupportedGrantType:        http.StatusBadRequest,
	InvalidScope:                http.StatusBadRequest,
	InvalidToken:                http.StatusUnauthorized,
	InsufficientScope:           http.StatusForbidden,
	InvalidCredentialRequest:    http.StatusBadRequest,
	UnsupportedCredentialType:   http.StatusBadRequest,
	UnsupportedCredentialFormat: http.StatusBadRequest,
	InvalidProof:                http.StatusBadRequest,
	ServerError:                 http.StatusInternalServerError,
	InsufficientParametersCode:  http.StatusInternalServerError,
	InvalidDataProvidedCode:     http.StatusBadRequest,
}

// Error is an OAuth2/OpenID error. It carries the error code, a human-readable description and the recommended
// HTTP status code (0 when there is none).
type Error struct {
	// Code is the error code as defined by the OAuth2/OpenID specifications.
	Code ErrorCode `json:"error"`
	// Description is a human-readable description of the error, returned to the client as error_description.
	Description string `json:"error_description,omitempty"`
	// StatusCode is the HTTP status code that should be returned to the client.
	StatusCode int `json:"-"`
	// InternalError is the underlying error, may be omitted. It is not intended to be returned to the client.
	InternalError error `json:"-"`
}

// NewError creates an Error with the given code and description, with the status code recommended for that code.
func NewError(code ErrorCode, description string) Error {
	return Error{
		Code:        code,
		Description: description,
		StatusCode:  statusCodes[code],
	}
}

// WithCause returns a copy of the error, with the given error as internal error.
func (e Error) WithCause(err error) Error {
	e.InternalError = err
	return e
}

// Error returns the error message, which is the code, followed by the description (if any) and the internal error (if any).
func (e Error) Error() string {
	result := string(e.Code)
	if e.Description != "" {
		result += " - " + e.Description
	}
	if e.InternalError != nil {
		result += fmt.Sprintf(" (%s)", e.InternalError.Error())
	}
	return result
}

// Unwrap returns the internal error.
func (e Error) Unwrap() error {
	return e.InternalError
}

// Is returns true if the target is an Error with the same code.
func (e Error) Is(target error) bool {
	switch other := target.(type) {
	case Error:
		return other.Code == e.Code
	case *Error:
		return other != nil && other.Code == e.Code
	}
	return false
}

// RFCResponseBody is the error response body as specified by RFC6749 section 5.2.
type RFCResponseBody struct {
	Error            ErrorCode `json:"error"`
	ErrorDescription string    `json:"error_description,omitempty"`
}

// RFCResponse is the error in the form it should be returned to the client.
type RFCResponse struct {
	// Status is the recommended HTTP status code, 0 if there is none.
	Status int
	Body   RFCResponseBody
}

// RFCResponse maps the error to the HTTP response it should result in.
func (e Error) RFCResponse() RFCResponse {
	return RFCResponse{
		Status: e.StatusCode,
		Body: RFCResponseBody{
			Error:            e.Code,
			ErrorDescription: e.Description,
		},
	}
}

// InvalidRequestError creates an invalid_request error.
func InvalidRequestError(format string, args ...interface{}) Error {
	return NewError(InvalidRequest, fmt.Sprintf(format, args...))
}

// AccessDeniedError creates an access_denied error.
func AccessDeniedError(format string, args ...interface{}) Error {
	return NewError(AccessDenied, fmt.Sprintf(format, args...))
}

// InvalidClientError creates an invalid_client error.
func InvalidClientError(format string, args ...interface{}) Error {
	return NewError(InvalidClient, fmt.Sprintf(format, args...))
}

// InvalidGrantError creates an invalid_grant error.
func InvalidGrantError(format string, args ...interface{}) Error {
	return NewError(InvalidGrant, fmt.Sprintf(format, args...))
}

// UnauthorizedClientError creates an unauthorized_client error.
func UnauthorizedClientError(format string, args ...interface{}) Error {
	return NewError(UnauthorizedClient, fmt.Sprintf(format, args...))
}

// UnsupportedGrantTypeError creates an unsupported_grant_type error.
func UnsupportedGrantTypeError(format string, args ...interface{}) Error {
	return NewError(UnsupportedGrantType, fmt.Sprintf(format, args...))
}

// InvalidScopeError creates an invalid_scope error.
func InvalidScopeError(format string, args ...interface{}) Error {
	return NewError(InvalidScope, fmt.Sprintf(format, args...))
}

// InvalidTokenError creates an invalid_token error.
func InvalidTokenError(format string, args ...interface{}) Error {
	return NewError(InvalidToken, fmt.Sprintf(format, args...))
}

// InsufficientScopeError creates an insufficient_scope error.
func InsufficientScopeError(format string, args ...interface{}) Error {
	return NewError(InsufficientScope, fmt.Sprintf(format, args...))
}

// InvalidCredentialRequestError creates an invalid_credential_request error.
func InvalidCredentialRequestError(format string, args ...interface{}) Error {
	return NewError(InvalidCredentialRequest, fmt.Sprintf(format, args...))
}

// UnsupportedCredentialTypeError creates an unsupported_credential_type error.
func UnsupportedCredentialTypeError(format string, args ...interface{}) Error {
	return NewError(UnsupportedCredentialType, fmt.Sprintf(format, args...))
}

// UnsupportedCredentialFormatError creates an unsupported_credential_format error.
func UnsupportedCredentialFormatError(format string, args ...interface{}) Error {
	return NewError(UnsupportedCredentialFormat, fmt.Sprintf(format, args...))
}

// InvalidProofError creates an invalid_proof error.
func InvalidProofError(format string, args ...interface{}) Error {
	return NewError(InvalidProof, fmt.Sprintf(format, args...))
}

// UnsupportedResponseTypeError creates an unsupported_response_type error.
func UnsupportedResponseTypeError(format string, args ...interface{}) Error {
	return NewError(UnsupportedResponseType, fmt.Sprintf(format, args...))
}

// VPFormatsNotSupportedError creates a vp_formats_not_supported error.
func VPFormatsNotSupportedError(format string, args ...interface{}) Error {
	return NewError(VPFormatsNotSupported, fmt.Sprintf(format, args...))
}

// InternalError creates a server_error, for unimplemented features or collaborators that violate their contract.
func InternalError(format string, args ...interface{}) Error {
	return NewError(ServerError, fmt.Sprintf(format, args...))
}

// InsufficientParameters creates an insufficient_parameters error, for operations that lack a required collaborator.
func InsufficientParameters(format string, args ...interface{}) Error {
	return NewError(InsufficientParametersCode, fmt.Sprintf(format, args...))
}

// InvalidDataProvided creates an invalid_data_provided error, for malformed caller-provided data.
func InvalidDataProvided(format string, args ...interface{}) Error {
	return NewError(InvalidDataProvidedCode, fmt.Sprintf(format, args...))
}
