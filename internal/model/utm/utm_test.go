package utm

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	req := require.New(t)
	q := url.Values{
		"utm_source":   {"newsletter"},
		"utm_campaign": {" Wellness "},
		"utm_medium":   {""},
		"ref":          {"ignored"},
	}

	p := Capture(q)
	req.Equal(Params{Source: "newsletter", Campaign: "Wellness"}, p)
	req.False(p.Empty())
	req.True(Capture(url.Values{}).Empty())
}

func TestSanitize(t *testing.T) {
	req := require.New(t)
	p := Sanitize(map[string]string{Content: "NILIA", "gclid": "x", Term: " "})
	req.Equal(Params{Content: "NILIA"}, p)
	req.True(p.IsNilia())
}

func TestDefaultMapping(t *testing.T) {
	m := DefaultMapping()
	tests := []struct {
		campaign string
		want     string
		ok       bool
	}{
		{"wellness", "wellness-assistant", true},
		{"  STUDY ", "learning-coach", true},
		{"black-friday", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := m.PersonaFor(Params{Campaign: tt.campaign})
		require.Equal(t, tt.ok, ok, tt.campaign)
		require.Equal(t, tt.want, got, tt.campaign)
	}
}

func TestNilMappingResolvesNothing(t *testing.T) {
	var m *Mapping
	_, ok := m.PersonaFor(Params{Campaign: "wellness"})
	require.False(t, ok)
}

func TestLoadMapping(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "utm.yaml")
	req.NoError(os.WriteFile(path, []byte("campaigns:\n  Spring-Launch: companion\n  exams: learning-coach\n"), 0o600))

	m, err := LoadMapping(path)
	req.NoError(err)

	got, ok := m.PersonaFor(Params{Campaign: "spring-launch"})
	req.True(ok)
	req.Equal("companion", got)

	known := map[string]bool{"companion": true}
	err = m.Validate(func(id string) bool { return known[id] })
	req.EqualError(err, "utm mapping references unknown personas: learning-coach")
}

func TestLoadMapping_Errors(t *testing.T) {
	req := require.New(t)
	_, err := LoadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
	req.Error(err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	req.NoError(os.WriteFile(path, []byte("campaigns: [unclosed"), 0o600))
	_, err = LoadMapping(path)
	req.ErrorContains(err, "parse utm mapping")
}
