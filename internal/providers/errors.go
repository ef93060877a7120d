package providers

import (
	"errors"
	"fmt"
)

// ErrNotConfigured marks a provider with no credential. Expected, not
// exceptional: the dispatcher skips it silently without a network call.
var ErrNotConfigured = errors.New("provider not configured")

// ProviderError wraps any transport or parse failure from a configured
// provider. Adapters fold provider-specific failures into this one type.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Errorf builds a ProviderError with a formatted underlying message.
func Errorf(provider, format string, args ...any) *ProviderError {
	return &ProviderError{Provider: provider, Err: fmt.Errorf(format, args...)}
}

// NotConfiguredError tags ErrNotConfigured with the provider name so skip
// logs can still name the provider.
func NotConfiguredError(provider string) error {
	return fmt.Errorf("%s: %w", provider, ErrNotConfigured)
}
