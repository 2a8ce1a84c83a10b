package polaris

import "net/url"

// restRequest is used in client requests to describe one Polaris REST call
// before URL construction.
type restRequest struct {
	// HTTP method, e.g. http.MethodGet.
	method string
	// Relative path template with %s placeholders, e.g. "/tables/%s".
	path string
	// Values for the placeholders. Path-escaped before substitution.
	args []string
	// Query string values, appended after the expanded path.
	params url.Values
	// Request payload, nil for none.
	body []byte
	// Extra headers for this call only.
	header map[string]string
}

type restResponse struct {
	statusCode int
	body       []byte
}
