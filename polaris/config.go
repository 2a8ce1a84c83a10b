package polaris

import "time"

// ClientConfig configs to create a Polaris Client
type ClientConfig struct {
	// Org is the Polaris organization name, as it appears in the API host name.
	Org string
	// ClientID identifies the OAuth API client created in the Polaris console.
	ClientID string
	// ClientSecret is the secret issued for the API client.
	ClientSecret string
	// Domain is an optional regional domain prefix, e.g. "eu". Empty for the
	// default us domain.
	Domain string
	// APIEndpoint overrides the API base URL derived from Domain.
	// Mostly useful for tests and private-link deployments.
	APIEndpoint string
	// TokenEndpoint overrides the OAuth token URL derived from Org and Domain.
	TokenEndpoint string
	// Additional HTTP headers to include in API requests
	ExtraHTTPHeader map[string]string
	// HTTP request timeout for API requests
	HTTPTimeout time.Duration
	// CompressEvents gzips event batches sent through the push API.
	CompressEvents bool
}

const (
	defaultAPIEndpointTemplate   = "https://api.%simply.io/v1"
	defaultTokenEndpointTemplate = "https://id.%simply.io/auth/realms/%s/protocol/openid-connect/token"
)
