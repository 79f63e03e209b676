package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `
associations:
  - id: .txt
    progid: txtfile
  - id: http
    progid: ChromeHTML
write_threshold: 2s
max_attempts: 5
notify: false
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(samplePlan))
	require.NoError(t, err)
	assert.Equal(t, []Association{{".txt", "txtfile"}, {"http", "ChromeHTML"}}, p.Associations)
	assert.Equal(t, 2*time.Second, p.WriteThreshold)
	assert.Equal(t, 5, p.MaxAttempts)
	assert.False(t, p.ShouldNotify())
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse([]byte("associations:\n  - {id: .md, progid: mdfile}\n"))
	require.NoError(t, err)
	assert.Zero(t, p.WriteThreshold)
	assert.Zero(t, p.MaxAttempts)
	assert.True(t, p.ShouldNotify())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no progid", "associations:\n  - id: .txt\n"},
		{"no id", "associations:\n  - progid: txtfile\n"},
		{"backslash", "associations:\n  - {id: 'a\\b', progid: x}\n"},
		{"duplicate", "associations:\n  - {id: .txt, progid: a}\n  - {id: .TXT, progid: b}\n"},
		{"threshold", "associations:\n  - {id: .txt, progid: a}\nwrite_threshold: 2m\n"},
		{"attempts", "associations:\n  - {id: .txt, progid: a}\nmax_attempts: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidPlan)
		})
	}

	_, err := Parse([]byte("associations: []\nbogus: 1\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPlan)
}

func TestLoadAndMarshal(t *testing.T) {
	p, err := Parse([]byte(samplePlan))
	require.NoError(t, err)
	out, err := p.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
