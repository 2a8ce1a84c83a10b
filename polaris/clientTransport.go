package polaris

import "net/http"

// HTTPClient is an interface for http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// clientTransport executes authenticated REST calls against the Polaris API.
type clientTransport interface {
	execute(req *restRequest) (*restResponse, error)
	setTrace(trace bool)
}
