// Package config resolves runtime settings from the process environment,
// optionally enriched by a dotenv-style file. Precedence: ambient environment >
// env file > literal defaults. Loading never fails; problems with the env file
// are logged and reported through EnvFileResult.
package config
