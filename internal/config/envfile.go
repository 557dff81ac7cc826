package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the env file read when no path is configured.
const DefaultEnvFile = ".env"

// EnvFileStatus describes the outcome of the env file merge step.
type EnvFileStatus int

const (
	EnvFileLoaded EnvFileStatus = iota
	EnvFileSkipped
	EnvFileMissing
	EnvFileUnreadable
	EnvFileInvalid
)

func (s EnvFileStatus) String() string {
	switch s {
	case EnvFileLoaded:
		return "loaded"
	case EnvFileSkipped:
		return "skipped"
	case EnvFileMissing:
		return "missing"
	case EnvFileUnreadable:
		return "unreadable"
	case EnvFileInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("EnvFileStatus(%d)", int(s))
	}
}

var (
	// ErrEnvFileMissing is reported when the env file does not exist.
	ErrEnvFileMissing = errors.New("env file not found")
	// ErrEnvFileUnreadable is reported when the env file exists but cannot be read.
	ErrEnvFileUnreadable = errors.New("env file unreadable")
	// ErrEnvFileInvalid is reported when the env file cannot be parsed or applied.
	ErrEnvFileInvalid = errors.New("env file invalid")
)

// EnvFileResult records what the env file step did. Err is nil unless Status
// is EnvFileMissing, EnvFileUnreadable or EnvFileInvalid.
type EnvFileResult struct {
	Path   string
	Status EnvFileStatus
	// Applied lists keys copied from the file into the environment.
	Applied []string
	// Shadowed lists keys present in the file that were already set in the
	// environment and therefore left untouched.
	Shadowed []string
	Err      error
}

// mergeEnvFile reads the dotenv file at path and sets every key that env does
// not already contain. Existing keys win, even when their value is empty.
func mergeEnvFile(path string, env Environment) EnvFileResult {
	result := EnvFileResult{Path: path}
	if path == "" {
		result.Status = EnvFileSkipped
		return result
	}

	values, err := godotenv.Read(path)
	if err != nil {
		result.Status, result.Err = classifyEnvFileError(err)
		return result
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, exists := env.LookupEnv(key); exists {
			result.Shadowed = append(result.Shadowed, key)
			continue
		}
		if err := env.Setenv(key, values[key]); err != nil {
			result.Status = EnvFileInvalid
			result.Err = fmt.Errorf("%w: set %s: %w", ErrEnvFileInvalid, key, err)
			return result
		}
		result.Applied = append(result.Applied, key)
	}

	result.Status = EnvFileLoaded
	return result
}

func classifyEnvFileError(err error) (EnvFileStatus, error) {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return EnvFileMissing, fmt.Errorf("%w: %w", ErrEnvFileMissing, err)
	case errors.As(err, &pathErr):
		return EnvFileUnreadable, fmt.Errorf("%w: %w", ErrEnvFileUnreadable, err)
	default:
		return EnvFileInvalid, fmt.Errorf("%w: %w", ErrEnvFileInvalid, err)
	}
}
