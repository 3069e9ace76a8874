package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/policy.yaml
var defaultPolicyYAML []byte

// DefaultPolicy returns a fresh copy of the built-in statutory tables.
func DefaultPolicy() *domain.Policy {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded policy is invalid: %v", err))
	}
	return p
}

// ParsePolicy parses and validates a complete policy document.
func ParsePolicy(data []byte) (*domain.Policy, error) {
	var p domain.Policy
	if err := decodeStrict(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}
	return &p, nil
}

// LoadPolicy overlays the policy file at path onto the built-in tables.
// Fields are merged one by one: a section that sets only some fields keeps
// the defaults for the rest. Lists (GST slabs, surcharge tiers, brackets)
// and regimes named in the file replace the default entry whole. An empty
// path returns the defaults.
func LoadPolicy(path string) (*domain.Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}
	if err := decodeStrict(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// MarshalPolicy renders a policy as YAML.
func MarshalPolicy(p *domain.Policy) ([]byte, error) {
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

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
