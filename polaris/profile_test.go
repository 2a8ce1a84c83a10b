package polaris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadProfile(t *testing.T) {
	profile, err := LoadProfile(strings.NewReader(`
org: acme
clientId: reporting
clientSecret: s3cret
domain: eu
`))
	assert.Nil(t, err)
	assert.Equal(t, "acme", profile.Org)
	assert.Equal(t, "reporting", profile.ClientID)
	assert.Equal(t, "s3cret", profile.ClientSecret)
	assert.Equal(t, "eu", profile.Domain)

	config := profile.clientConfig()
	assert.Equal(t, "acme", config.Org)
	assert.Equal(t, "eu", config.Domain)
}

func TestLoadProfileUnknownField(t *testing.T) {
	_, err := LoadProfile(strings.NewReader(`
org: acme
clientid: misspelled
`))
	assert.NotNil(t, err)
}

func TestLoadProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	err := os.WriteFile(path, []byte("org: acme\nclientId: id\nclientSecret: s\n"), 0o600)
	assert.Nil(t, err)

	profile, err := LoadProfileFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "acme", profile.Org)

	_, err = LoadProfileFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}
