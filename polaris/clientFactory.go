package polaris

import (
	"fmt"
	"net/http"
	"strings"
)

// NewWithConfig creates a new Polaris client connection. The client fetches
// an initial OAuth token before returning, so bad credentials fail fast.
func NewWithConfig(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("a client config is required")
	}
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("please specify the OAuth client ID and secret for the organization")
	}
	if config.Org == "" && config.TokenEndpoint == "" {
		return nil, fmt.Errorf("please specify the Polaris organization name")
	}

	domainPrefix := ""
	if strings.TrimSpace(config.Domain) != "" {
		domainPrefix = config.Domain + "."
	}
	apiBase := config.APIEndpoint
	if apiBase == "" {
		apiBase = fmt.Sprintf(defaultAPIEndpointTemplate, domainPrefix)
	}
	tokenURL := config.TokenEndpoint
	if tokenURL == "" {
		tokenURL = fmt.Sprintf(defaultTokenEndpointTemplate, domainPrefix, config.Org)
	}

	httpClient := &http.Client{}
	if config.HTTPTimeout != 0 {
		httpClient.Timeout = config.HTTPTimeout
	}

	tokens := newTokenSource(httpClient, tokenURL, config.ClientID, config.ClientSecret)
	client := &Client{
		transport: &jsonHTTPClientTransport{
			client:  httpClient,
			apiBase: strings.TrimSuffix(apiBase, "/"),
			tokens:  tokens,
			header:  config.ExtraHTTPHeader,
		},
		tokens:         tokens,
		compressEvents: config.CompressEvents,
	}
	if err := client.RenewToken(); err != nil {
		return nil, err
	}
	return client, nil
}

// New creates a new Polaris client connection for the given organization and
// API client credentials.
func New(org, clientID, clientSecret string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		Org:          org,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewFromProfile creates a new Polaris client connection from a connection
// profile.
func NewFromProfile(profile *Profile) (*Client, error) {
	if profile == nil {
		return nil, fmt.Errorf("a profile is required")
	}
	return NewWithConfig(profile.clientConfig())
}

// NewFromProfileFile creates a new Polaris client connection from a YAML
// connection profile on disk.
func NewFromProfileFile(path string) (*Client, error) {
	profile, err := LoadProfileFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromProfile(profile)
}
