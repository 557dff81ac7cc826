package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/mernconfig/internal/auth"
	"github.com/eugenenazirov/mernconfig/internal/config"
)

// Output formats accepted by Describe.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by Describe for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// App encapsulates the resolved settings and the components built from them.
type App struct {
	settings config.Settings
	signer   *auth.Signer
	logger   *zap.Logger
}

// New initializes the application from settings. tokenTTL of zero keeps the
// signer default. A nil logger discards output.
func New(settings config.Settings, logger *zap.Logger, tokenTTL time.Duration) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	if settings.UsesDefaultSecret() {
		logger.Warn("using default JWT secret", zap.String("variable", config.EnvJWTSecret))
	}

	return &App{
		settings: settings,
		signer:   auth.NewSigner(settings, auth.WithTTL(tokenTTL)),
		logger:   logger,
	}
}

// Settings returns a copy of the resolved settings.
func (a *App) Settings() config.Settings {
	return a.settings
}

// Signer returns the token signer bound to the configured secret.
func (a *App) Signer() *auth.Signer {
	return a.signer
}

// Describe writes the settings to w in format. The secret and any connection
// string password are masked unless reveal is set.
func (a *App) Describe(w io.Writer, format string, reveal bool) error {
	settings := a.settings
	if !reveal {
		settings = settings.Redacted()
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// IssueToken signs a token for subject and logs the issuance without the token.
func (a *App) IssueToken(subject string) (string, error) {
	token, err := a.signer.Issue(subject)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	a.logger.Info("token issued", zap.String("subject", subject))
	return token, nil
}
