package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/mernconfig/internal/application"
	"github.com/eugenenazirov/mernconfig/internal/config"
	"github.com/eugenenazirov/mernconfig/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mernconfig: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, resolves settings and executes the selected command.
// opts are passed through to the config resolver.
func run(args []string, stdout io.Writer, opts ...config.Option) error {
	kingpinApp := kingpin.New("mernconfig", "Resolves application settings from the environment and an optional env file")
	envFile := kingpinApp.Flag("env-file", "Path to the dotenv file merged into the environment (empty to skip)").Default(config.DefaultEnvFile).String()
	logLevel := kingpinApp.Flag("log-level", "Minimum log level").Default(logging.DefaultLevel).Enum("debug", "info", "warn", "error")

	showCmd := kingpinApp.Command("show", "Print the resolved settings").Default()
	format := showCmd.Flag("format", "Output format").Default(application.FormatYAML).Enum(application.FormatYAML, application.FormatJSON)
	reveal := showCmd.Flag("reveal", "Print secrets in clear text").Bool()

	tokenCmd := kingpinApp.Command("token", "Issue a token signed with the resolved secret")
	subject := tokenCmd.Arg("subject", "Token subject").Required().String()
	ttl := tokenCmd.Flag("ttl", "Token lifetime").Default("1h").Duration()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	resolverOpts := append([]config.Option{config.WithEnvFile(*envFile)}, opts...)
	result := config.Load(logger, resolverOpts...)

	app := application.New(result.Settings, logger, *ttl)

	switch command {
	case tokenCmd.FullCommand():
		token, err := app.IssueToken(*subject)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, token)
		return err
	default:
		return app.Describe(stdout, *format, *reveal)
	}
}
