package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Request is one calculation request read from YAML:
//
//	calculator: sip
//	params:
//	  monthly_investment: 5000
//	  annual_rate_percent: 12
//	  years: 10
type Request struct {
	Calculator string    `yaml:"calculator"`
	Params     yaml.Node `yaml:"params"`
}

// Decode fills v from the request parameters, rejecting unknown keys.
func (r *Request) Decode(v any) error {
	if r.Params.Kind == 0 {
		return fmt.Errorf("params are missing")
	}
	data, err := yaml.Marshal(&r.Params)
	if err != nil {
		return err
	}
	return decodeStrict(data, v)
}

// ParseRequests parses every YAML document in data as a request.
func ParseRequests(data []byte) ([]Request, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var reqs []Request
	for i := 0; ; i++ {
		var r Request
		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse request %d: %w", i+1, err)
		}
		if r.Calculator == "" {
			return nil, fmt.Errorf("request %d: calculator is required", i+1)
		}
		reqs = append(reqs, r)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("no requests found")
	}
	return reqs, nil
}

// LoadRequests reads a request file; "-" reads standard input.
func LoadRequests(filename string) ([]Request, error) {
	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseRequests(data)
}
