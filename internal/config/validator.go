package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gqlgate/gqlgate/internal/domain/auth"
)

// Validate validates the Config using struct tags and custom cross-field rules.
// Returns an error if validation fails, with actionable error messages.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	if err := c.validateEngineTimeout(); err != nil {
		return err
	}

	if err := c.validateAPIKeyHashes(); err != nil {
		return err
	}

	if err := c.validateTLSPairing(); err != nil {
		return err
	}

	return nil
}

// validateEngineTimeout ensures the timeout parses as a duration.
func (c *Config) validateEngineTimeout() error {
	if c.Engine.Timeout == "" || c.Engine.Timeout == "0" {
		return nil
	}
	if _, err := time.ParseDuration(c.Engine.Timeout); err != nil {
		return fmt.Errorf("engine.timeout: invalid duration %q", c.Engine.Timeout)
	}
	return nil
}

// validateAPIKeyHashes ensures every configured hash has a recognizable
// format. An unrecognizable hash would silently never match any key, so
// it is rejected at startup instead.
func (c *Config) validateAPIKeyHashes() error {
	for i, h := range c.Auth.APIKeyHashes {
		if auth.DetectHashType(h) == "unknown" {
			return fmt.Errorf("auth.api_key_hashes[%d]: unrecognized hash format (want argon2id PHC, sha256: prefix, or bare SHA-256 hex)", i)
		}
	}
	return nil
}

// validateTLSPairing ensures cert and key are set together.
func (c *Config) validateTLSPairing() error {
	hasCert := c.Server.TLSCertFile != ""
	hasKey := c.Server.TLSKeyFile != ""
	if hasCert != hasKey {
		return errors.New("server: tls_cert_file and tls_key_file must be set together")
	}
	return nil
}

// formatValidationErrors converts validator.ValidationErrors to user-friendly messages.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, formatSingleValidationError(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

// formatSingleValidationError creates a user-friendly message for a single validation error.
func formatSingleValidationError(e validator.FieldError) string {
	field := e.Namespace()
	tag := e.Tag()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a valid host:port", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, tag)
	}
}
