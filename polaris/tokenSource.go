package polaris

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// renewalMargin is how long before expiry a cached token is already treated
// as expired, so a token never runs out mid-request.
const renewalMargin = 30 * time.Second

type accessToken struct {
	raw       string
	expiresAt time.Time
}

func (t *accessToken) expired(now time.Time) bool {
	if t == nil || t.raw == "" {
		return true
	}
	if t.expiresAt.IsZero() {
		return false
	}
	return !now.Add(renewalMargin).Before(t.expiresAt)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// tokenSource obtains bearer tokens through the OAuth client-credentials
// flow and renews them when they expire.
//
// See https://docs.imply.io/polaris/oauth/
type tokenSource struct {
	client       HTTPClient
	tokenURL     string
	clientID     string
	clientSecret string
	now          func() time.Time

	mu      sync.Mutex
	current *accessToken
}

func newTokenSource(client HTTPClient, tokenURL, clientID, clientSecret string) *tokenSource {
	return &tokenSource{
		client:       client,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// token returns a bearer token valid for at least renewalMargin, fetching a
// fresh one when the cached token is missing or about to expire.
func (s *tokenSource) token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current.expired(s.now()) {
		return s.current.raw, nil
	}
	fresh, err := s.fetch()
	if err != nil {
		return "", err
	}
	s.current = fresh
	return fresh.raw, nil
}

// invalidate drops the cached token if it is still the one the caller saw
// rejected. Keeping a newer token avoids a duplicate renewal when two calls
// hit a 401 at the same time.
func (s *tokenSource) invalidate(stale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.raw == stale {
		s.current = nil
	}
}

// renew unconditionally fetches a fresh token.
func (s *tokenSource) renew() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh, err := s.fetch()
	if err != nil {
		return err
	}
	s.current = fresh
	return nil
}

func (s *tokenSource) fetch() (*accessToken, error) {
	form := url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequest(http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.client.Do(req)
	if err != nil {
		log.Error("Got exceptions during token request. ", err)
		return nil, err
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read token response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, bodyBytes)
	}
	var tr tokenResponse
	if err = decodeJSONWithNumber(bodyBytes, &tr); err != nil {
		return nil, fmt.Errorf("unable to decode token response: %v", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token response did not include an access token")
	}
	return &accessToken{
		raw:       tr.AccessToken,
		expiresAt: s.expiryOf(&tr),
	}, nil
}

// expiryOf derives the expiry timestamp from expires_in, falling back to the
// exp claim of the token itself when the server omits it. The claim is read
// without signature verification: the client only schedules renewal with it.
func (s *tokenSource) expiryOf(tr *tokenResponse) time.Time {
	if tr.ExpiresIn > 0 {
		return s.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(tr.AccessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
