package config

import (
	"net/url"

	"go.uber.org/zap"
)

const (
	// EnvJWTSecret names the variable holding the token signing secret.
	EnvJWTSecret = "JWT_SECRET"
	// EnvMongoDBURI names the variable holding the MongoDB connection string.
	EnvMongoDBURI = "MONGODB_URI"

	// DefaultJWTSecret is used when JWT_SECRET is unset or empty.
	DefaultJWTSecret = "unsafe_jwt_secret"
	// DefaultMongoDBURI is used when MONGODB_URI is unset or empty.
	DefaultMongoDBURI = "mongodb://localhost/mern"

	redactedSecret = "********"
)

// Settings is the resolved application configuration. Both fields are always
// non-empty.
type Settings struct {
	JWTSecret string           `yaml:"jwt_secret" json:"jwt_secret"`
	Mongoose  MongooseSettings `yaml:"mongoose" json:"mongoose"`
}

// MongooseSettings groups the database connection settings.
type MongooseSettings struct {
	URI string `yaml:"uri" json:"uri"`
}

// UsesDefaultSecret reports whether the secret fell back to DefaultJWTSecret.
func (s Settings) UsesDefaultSecret() bool {
	return s.JWTSecret == DefaultJWTSecret
}

// Redacted returns a copy of s that is safe to print: the secret is masked and
// any password embedded in the connection string is replaced.
func (s Settings) Redacted() Settings {
	out := s
	out.JWTSecret = redactedSecret
	out.Mongoose.URI = redactURI(s.Mongoose.URI)
	return out
}

func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redactedSecret
	}
	return u.Redacted()
}

// LoadResult is the outcome of a Load call.
type LoadResult struct {
	Settings Settings
	EnvFile  EnvFileResult
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnvironment replaces the process environment (primarily for tests).
func WithEnvironment(env Environment) Option {
	return func(r *Resolver) {
		r.env = env
	}
}

// WithEnvFile sets the env file path. An empty path skips the env file step.
func WithEnvFile(path string) Option {
	return func(r *Resolver) {
		r.envFile = path
	}
}

// Resolver builds Settings from an Environment.
type Resolver struct {
	env     Environment
	envFile string
	logger  *zap.Logger
}

// NewResolver creates a Resolver reading the process environment and
// DefaultEnvFile unless overridden by opts. A nil logger discards output.
func NewResolver(logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Resolver{
		env:     OSEnvironment{},
		envFile: DefaultEnvFile,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load is shorthand for NewResolver(logger, opts...).Load().
func Load(logger *zap.Logger, opts ...Option) LoadResult {
	return NewResolver(logger, opts...).Load()
}

// Load merges the env file into the environment, then resolves Settings.
// It never fails: env file problems are logged and returned in
// LoadResult.EnvFile, and missing variables fall back to their defaults.
func (r *Resolver) Load() LoadResult {
	envFile := mergeEnvFile(r.envFile, r.env)
	if envFile.Err != nil {
		r.logger.Warn("env file not loaded",
			zap.String("path", envFile.Path),
			zap.Stringer("status", envFile.Status),
			zap.Error(envFile.Err),
		)
	}

	secret, secretPresent := r.lookup(EnvJWTSecret)
	uri, _ := r.lookup(EnvMongoDBURI)

	settings := Settings{
		JWTSecret: valueOrDefault(secret, DefaultJWTSecret),
		Mongoose: MongooseSettings{
			URI: valueOrDefault(uri, DefaultMongoDBURI),
		},
	}

	r.logger.Info("config loaded",
		zap.Bool("jwt_secret_present", secretPresent),
		zap.String("env_file", envFile.Path),
		zap.Stringer("env_file_status", envFile.Status),
	)

	return LoadResult{Settings: settings, EnvFile: envFile}
}

// lookup returns the raw value of key and whether it is non-empty.
func (r *Resolver) lookup(key string) (string, bool) {
	value, _ := r.env.LookupEnv(key)
	return value, value != ""
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
