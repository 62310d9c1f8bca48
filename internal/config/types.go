// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"ftools-cli/pkg/fsutil"
)

const (
	// AlgorithmSHA256 is the default content digest.
	AlgorithmSHA256 HashAlgorithm = "sha256"
	// AlgorithmSHA512 selects the wider SHA-2 variant.
	AlgorithmSHA512 HashAlgorithm = "sha512"
	// AlgorithmMD5 is kept for compatibility with existing checksum files.
	AlgorithmMD5 HashAlgorithm = "md5"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidHashAlgorithm is returned when a HashAlgorithm value is not recognized.
	ErrInvalidHashAlgorithm = errors.New("invalid hash algorithm")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSizeSpec is returned when a SizeSpec value does not parse.
	ErrInvalidSizeSpec = errors.New("invalid size spec")
	// ErrInvalidWorkerCount is returned when a WorkerCount value is negative.
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	// ErrInvalidDupesConfig is the sentinel error wrapped by InvalidDupesConfigError.
	ErrInvalidDupesConfig = errors.New("invalid dupes config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// HashAlgorithm names a supported content digest.
	HashAlgorithm string

	// InvalidHashAlgorithmError is returned when a HashAlgorithm value is not recognized.
	// It wraps ErrInvalidHashAlgorithm for errors.Is() compatibility.
	InvalidHashAlgorithmError struct {
		Value HashAlgorithm
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// SizeSpec is a human-readable byte count like "1B", "100KB" or "2GB".
	// The zero value ("") is valid and means "no threshold".
	SizeSpec string

	// InvalidSizeSpecError is returned when a SizeSpec value does not parse.
	// It wraps ErrInvalidSizeSpec for errors.Is() compatibility.
	InvalidSizeSpecError struct {
		Value SizeSpec
		Cause error
	}

	// WorkerCount is the hashing pool size. Zero means "one per CPU".
	WorkerCount int

	// InvalidWorkerCountError is returned when a WorkerCount value is negative.
	// It wraps ErrInvalidWorkerCount for errors.Is() compatibility.
	InvalidWorkerCountError struct {
		Value WorkerCount
	}

	// InvalidDupesConfigError is returned when a DupesConfig has invalid fields.
	// It wraps ErrInvalidDupesConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidDupesConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Dupes configures duplicate detection defaults.
		Dupes DupesConfig `toml:"dupes" mapstructure:"dupes"`
		// UI configures the user interface.
		UI UIConfig `toml:"ui" mapstructure:"ui"`
	}

	// DupesConfig holds the defaults the dupes command starts from; flags
	// override every field.
	DupesConfig struct {
		// MinSize excludes files below this threshold, e.g. "1B" or "4KB".
		MinSize SizeSpec `toml:"min_size" mapstructure:"min_size"`
		// Algorithm selects the content digest.
		Algorithm HashAlgorithm `toml:"algorithm" mapstructure:"algorithm"`
		// Workers sizes the hashing pool; 0 means one worker per CPU.
		Workers WorkerCount `toml:"workers" mapstructure:"workers"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `toml:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the HashAlgorithm.
func (a HashAlgorithm) String() string { return string(a) }

// IsValid returns whether the HashAlgorithm is one of the supported digests,
// and a list of validation errors if it is not.
func (a HashAlgorithm) IsValid() (bool, []error) {
	switch a {
	case AlgorithmSHA256, AlgorithmSHA512, AlgorithmMD5:
		return true, nil
	default:
		return false, []error{&InvalidHashAlgorithmError{Value: a}}
	}
}

// Error implements the error interface for InvalidHashAlgorithmError.
func (e *InvalidHashAlgorithmError) Error() string {
	return fmt.Sprintf("invalid hash algorithm %q (valid: sha256, sha512, md5)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidHashAlgorithmError) Unwrap() error { return ErrInvalidHashAlgorithm }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the SizeSpec.
func (s SizeSpec) String() string { return string(s) }

// Bytes parses the spec into a byte count. The zero value parses to 0.
func (s SizeSpec) Bytes() (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return fsutil.ParseSize(string(s))
}

// IsValid returns whether the SizeSpec parses.
// The zero value ("") is valid and means "no threshold".
func (s SizeSpec) IsValid() (bool, []error) {
	if s == "" {
		return true, nil
	}
	if _, err := fsutil.ParseSize(string(s)); err != nil {
		return false, []error{&InvalidSizeSpecError{Value: s, Cause: err}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSizeSpecError.
func (e *InvalidSizeSpecError) Error() string {
	return fmt.Sprintf("invalid size spec %q: %v", e.Value, e.Cause)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidSizeSpecError) Unwrap() error { return ErrInvalidSizeSpec }

// IsValid returns whether the WorkerCount is non-negative.
func (w WorkerCount) IsValid() (bool, []error) {
	if w < 0 {
		return false, []error{&InvalidWorkerCountError{Value: w}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWorkerCountError.
func (e *InvalidWorkerCountError) Error() string {
	return fmt.Sprintf("invalid worker count %d: must be zero or positive", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidWorkerCountError) Unwrap() error { return ErrInvalidWorkerCount }

// IsValid returns whether the DupesConfig has valid fields.
// It delegates to MinSize.IsValid(), Algorithm.IsValid() and Workers.IsValid().
func (c DupesConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.MinSize.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Algorithm.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Workers.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidDupesConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDupesConfigError.
func (e *InvalidDupesConfigError) Error() string {
	return fmt.Sprintf("invalid dupes config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidDupesConfig for errors.Is() compatibility.
func (e *InvalidDupesConfigError) Unwrap() error { return ErrInvalidDupesConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Dupes.IsValid() and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Dupes.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dupes: DupesConfig{
			MinSize:   "1B",
			Algorithm: AlgorithmSHA256,
			Workers:   0, // one per CPU
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
