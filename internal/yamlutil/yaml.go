// Package yamlutil is the YAML seam for presentation configs. It narrows
// goccy/go-yaml to the three operations the config layer needs — lenient
// decode, strict decode, and encode for --gen-config — and caps input size
// so a mistyped path to a huge file fails fast instead of being parsed.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds config input. Presentation configs are a few hundred
// bytes; anything near the cap is not a config file.
const MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yaml: no input data")
	ErrNilDestination = errors.New("yaml: nil destination")
	ErrInputTooLarge  = errors.New("yaml: input too large")
)

// Unmarshal decodes data into v, tolerating unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := checkDecode(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yaml: decoding: %w", err)
	}
	return nil
}

// UnmarshalStrict decodes data into v and rejects unknown fields, so typos
// in config keys surface as errors instead of silently applying defaults.
func UnmarshalStrict(data []byte, v any) error {
	if err := checkDecode(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yaml: decoding: %w", err)
	}
	return nil
}

// Marshal encodes v, used to render the --gen-config starter file.
func Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yaml: encoding: %w", err)
	}
	return data, nil
}

func checkDecode(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	return nil
}
