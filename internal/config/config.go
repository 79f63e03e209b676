// Package config loads association plan files for assocctl apply.
//
// A plan is YAML:
//
//	associations:
//	  - id: .txt
//	    progid: txtfile
//	  - id: http
//	    progid: ChromeHTML
//	write_threshold: 2s
//	max_attempts: 3
//	notify: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan indicates a plan file that parsed but cannot be applied.
var ErrInvalidPlan = errors.New("config: invalid plan")

// Association is one plan entry.
type Association struct {
	ID     string `yaml:"id"`
	ProgID string `yaml:"progid"`
}

// Plan is a set of associations plus the write options used to apply them.
type Plan struct {
	Associations []Association `yaml:"associations"`

	// WriteThreshold overrides the time that must be left in the minute
	// after hashing. Zero keeps the library default.
	WriteThreshold time.Duration `yaml:"write_threshold"`

	// MaxAttempts overrides the retry bound. Zero keeps the default.
	MaxAttempts int `yaml:"max_attempts"`

	// Notify broadcasts the association change after each write.
	// Default: true
	Notify *bool `yaml:"notify"`
}

// ShouldNotify reports the effective Notify setting.
func (p *Plan) ShouldNotify() bool {
	return p.Notify == nil || *p.Notify
}

// Load reads and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a plan. Unknown fields are rejected.
func Parse(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every entry and rejects duplicate ids (case-insensitive).
func (p *Plan) Validate() error {
	if len(p.Associations) == 0 {
		return fmt.Errorf("%w: no associations", ErrInvalidPlan)
	}
	if p.MaxAttempts < 0 {
		return fmt.Errorf("%w: max_attempts %d", ErrInvalidPlan, p.MaxAttempts)
	}
	if p.WriteThreshold < 0 || p.WriteThreshold >= time.Minute {
		return fmt.Errorf("%w: write_threshold %s", ErrInvalidPlan, p.WriteThreshold)
	}
	seen := make(map[string]int, len(p.Associations))
	for i, a := range p.Associations {
		switch {
		case a.ID == "":
			return fmt.Errorf("%w: entry %d: empty id", ErrInvalidPlan, i)
		case strings.Contains(a.ID, `\`):
			return fmt.Errorf("%w: entry %d: id %q contains a backslash", ErrInvalidPlan, i, a.ID)
		case a.ProgID == "":
			return fmt.Errorf("%w: entry %d (%s): empty progid", ErrInvalidPlan, i, a.ID)
		}
		key := strings.ToLower(a.ID)
		if j, dup := seen[key]; dup {
			return fmt.Errorf("%w: entries %d and %d both set %s", ErrInvalidPlan, j, i, a.ID)
		}
		seen[key] = i
	}
	return nil
}

// Marshal renders p as YAML.
func (p *Plan) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
