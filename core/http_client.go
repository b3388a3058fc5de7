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
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// maxFetchResponseSize limits the size of fetched documents (JWK sets, JSON schemas) to 1MB.
const maxFetchResponseSize = 1024 * 1024

// HttpError describes an error returned when invoking a remote server.
type HttpError struct {
	error
	StatusCode   int
	ResponseBody []byte
}

// TestResponseCode checks whether the returned HTTP status response code matches the expected code.
// If it doesn't match it returns an error, containing the received and expected status code, and the response body.
func TestResponseCode(expectedStatusCode int, response *http.Response) error {
	return TestResponseCodeWithLog(expectedStatusCode, response, nil)
}

// TestResponseCodeWithLog acts like TestResponseCode, but logs the response body if the status code is not as expected.
// It logs using the given logger, unless nil is passed.
func TestResponseCodeWithLog(expectedStatusCode int, response *http.Response, log *logrus.Entry) error {
	if response.StatusCode != expectedStatusCode {
		responseData, _ := io.ReadAll(io.LimitReader(response.Body, maxFetchResponseSize))
		if log != nil {
			// Cut off the response body to 100 characters max to prevent logging of large responses
			responseBodyString := string(responseData)
			if len(responseBodyString) > 100 {
				responseBodyString = responseBodyString[:100] + "...(clipped)"
			}
			log.WithField("http_request_path", response.Request.URL.Path).
				Infof("Unexpected HTTP response (len=%d): %s", len(responseData), responseBodyString)
		}
		return HttpError{
			error:        fmt.Errorf("server returned HTTP %d (expected: %d)", response.StatusCode, expectedStatusCode),
			StatusCode:   response.StatusCode,
			ResponseBody: responseData,
		}
	}
	return nil
}

// HTTPRequestDoer defines the Do method of the http.Client interface.
type HTTPRequestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewStrictHTTPClient creates a HTTPRequestDoer that only allows HTTPS calls when strictmode is enabled.
func NewStrictHTTPClient(strictmode bool, timeout time.Duration, tlsConfig *tls.Config) *StrictHTTPClient {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	transport := http.DefaultTransport
	// Might not be http.Transport in testing
	if httpTransport, ok := transport.(*http.Transport); ok {
		// cloning the transport might reduce performance.
		httpTransport = httpTransport.Clone()
		httpTransport.TLSClientConfig = tlsConfig
		transport = httpTransport
	}

	return &StrictHTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		strictMode: strictmode,
	}
}

// StrictHTTPClient is a HTTPRequestDoer that refuses plain HTTP requests in strict mode.
type StrictHTTPClient struct {
	client     *http.Client
	strictMode bool
}

func (s *StrictHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if s.strictMode && req.URL.Scheme != "https" {
		return nil, errors.New("strictmode is enabled, but request is not over HTTPS")
	}
	return s.client.Do(req)
}

// Fetcher retrieves remote documents, e.g. JWK sets from a jwks_uri or JSON schemas referenced by credentials.
type Fetcher interface {
	// Fetch performs a GET request on the given URL and returns the response body.
	// Non-200 responses result in an HttpError.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher is a Fetcher over HTTP, with optional rate limiting and retries.
type HTTPFetcher struct {
	client   HTTPRequestDoer
	limiter  *rate.Limiter
	attempts uint
	delay    time.Duration
}

// NewHTTPFetcher creates a HTTPFetcher from the given HTTP configuration.
func NewHTTPFetcher(cfg HTTPConfig) *HTTPFetcher {
	return NewHTTPFetcherWithClient(NewStrictHTTPClient(cfg.StrictMode, cfg.Timeout, nil), cfg)
}

// NewHTTPFetcherWithClient creates a HTTPFetcher that uses the given client to perform requests.
func NewHTTPFetcherWithClient(client HTTPRequestDoer, cfg HTTPConfig) *HTTPFetcher {
	result := &HTTPFetcher{
		client:   client,
		attempts: cfg.Retries,
		delay:    100 * time.Millisecond,
	}
	if result.attempts == 0 {
		result.attempts = 1
	}
	if cfg.RateLimit > 0 {
		result.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return result
}

func (h *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var result []byte
	err := retry.Do(func() error {
		var err error
		result, err = h.fetch(ctx, url)
		return err
	}, retry.Attempts(h.attempts), retry.Delay(h.delay), retry.Context(ctx), retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable))
	return result, err
}

func (h *HTTPFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	request.Header.Set("Accept", "application/json")
	response, err := h.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if err = TestResponseCode(http.StatusOK, response); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(response.Body, maxFetchResponseSize))
}

// isRetryable reports whether a failed fetch might succeed when retried: transport errors and 5xx responses.
func isRetryable(err error) bool {
	var httpErr HttpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
