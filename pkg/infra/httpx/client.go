package httpx

import "net/http"

// Client is the transport used by the inference adapters. Implementations
// must return a fully read, decoded body.
//
//go:generate mockery --name=Client --dir=. --output=./mocks --filename=http_client_mock.go --case=underscore --with-expecter
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
