package polaris

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is an on-disk connection profile for a Polaris organization, so
// scripts and notebooks can keep credentials out of source code.
//
// Example:
//
//	org: acme
//	clientId: reporting
//	clientSecret: ...
//	domain: eu
type Profile struct {
	Org           string `yaml:"org"`
	ClientID      string `yaml:"clientId"`
	ClientSecret  string `yaml:"clientSecret"`
	Domain        string `yaml:"domain,omitempty"`
	APIEndpoint   string `yaml:"apiEndpoint,omitempty"`
	TokenEndpoint string `yaml:"tokenEndpoint,omitempty"`
}

// LoadProfile reads a YAML connection profile. Unknown fields are rejected so
// a misspelled key does not silently drop a credential.
func LoadProfile(r io.Reader) (*Profile, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var profile Profile
	if err := decoder.Decode(&profile); err != nil {
		return nil, fmt.Errorf("unable to parse profile: %w", err)
	}
	return &profile, nil
}

// LoadProfileFile reads a YAML connection profile from a file.
func LoadProfileFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	profile, err := LoadProfile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profile, nil
}

func (p *Profile) clientConfig() *ClientConfig {
	return &ClientConfig{
		Org:           p.Org,
		ClientID:      p.ClientID,
		ClientSecret:  p.ClientSecret,
		Domain:        p.Domain,
		APIEndpoint:   p.APIEndpoint,
		TokenEndpoint: p.TokenEndpoint,
	}
}
