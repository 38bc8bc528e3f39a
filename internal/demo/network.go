package demo

import "errors"

// ErrServerUnavailable is what the demo backend always answers.
var ErrServerUnavailable = errors.New("Server unavailable")

// NetworkClient talks to the game backend.
type NetworkClient interface {
	SendServerRequest(request string) (string, error)
}

// ServerClient is the production client. The demo has no server, so every
// request fails.
type ServerClient struct{}

func (ServerClient) SendServerRequest(string) (string, error) {
	return "", ErrServerUnavailable
}

// MockNetworkClient records the last request and answers with Response.
type MockNetworkClient struct {
	Request  string
	Response string
}

func (m *MockNetworkClient) SendServerRequest(request string) (string, error) {
	m.Request = request
	return m.Response, nil
}
