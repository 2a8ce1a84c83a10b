package polaris

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

var defaultHTTPHeader = map[string]string{
	"Accept": "application/json",
}

// jsonHTTPClientTransport is the impl of clientTransport. It attaches the
// bearer token to every request and retries once with a fresh token when the
// API answers 401, matching the documented token revocation behavior.
type jsonHTTPClientTransport struct {
	client  HTTPClient
	apiBase string
	tokens  *tokenSource
	header  map[string]string
	trace   bool
}

func (t *jsonHTTPClientTransport) setTrace(trace bool) {
	t.trace = trace
}

func (t *jsonHTTPClientTransport) execute(req *restRequest) (*restResponse, error) {
	reqURL, err := t.buildURL(req)
	if err != nil {
		return nil, err
	}
	if t.trace {
		log.Infof("%s %s", req.method, reqURL)
		if len(req.body) > 0 {
			log.Infof("body: %s", req.body)
		}
	}
	token, err := t.tokens.token()
	if err != nil {
		return nil, err
	}
	resp, err := t.send(req, reqURL, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		t.tokens.invalidate(token)
		if token, err = t.tokens.token(); err != nil {
			return nil, err
		}
		if resp, err = t.send(req, reqURL, token); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Unable to read Polaris response. ", err)
		return nil, err
	}
	if t.trace {
		log.Infof("Response code: %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, newAPIError(resp.StatusCode, bodyBytes)
	}
	return &restResponse{statusCode: resp.StatusCode, body: bodyBytes}, nil
}

func (t *jsonHTTPClientTransport) send(req *restRequest, reqURL, token string) (*http.Response, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	r, err := http.NewRequest(req.method, reqURL, body)
	if err != nil {
		log.Error("Invalid HTTP Request. ", err)
		return nil, err
	}
	for k, v := range defaultHTTPHeader {
		r.Header.Set(k, v)
	}
	if req.body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, v := range t.header {
		r.Header.Set(k, v)
	}
	for k, v := range req.header {
		r.Header.Set(k, v)
	}
	r.Header.Set("Authorization", "Bearer "+token)
	resp, err := t.client.Do(r)
	if err != nil {
		log.Error("Got exceptions during sending request. ", err)
		return nil, err
	}
	return resp, nil
}

// buildURL expands the request path template with path-escaped arguments and
// appends the query string.
func (t *jsonHTTPClientTransport) buildURL(req *restRequest) (string, error) {
	placeholders := strings.Count(req.path, "%s")
	if placeholders != len(req.args) {
		return "", fmt.Errorf("request path %q expects %d arguments, got %d", req.path, placeholders, len(req.args))
	}
	escaped := make([]interface{}, 0, len(req.args))
	for _, arg := range req.args {
		escaped = append(escaped, url.PathEscape(arg))
	}
	reqURL := t.apiBase + fmt.Sprintf(req.path, escaped...)
	if len(req.params) > 0 {
		reqURL += "?" + req.params.Encode()
	}
	return reqURL, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
