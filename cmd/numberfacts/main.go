package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/brendan.keane/numberfacts/internal/cli"
	"github.com/brendan.keane/numberfacts/internal/config"
	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
		stop()
		os.Exit(1)
	}
}

// loadDotEnv loads filename into the environment. A missing file is fine;
// an unreadable or malformed one is a config error.
func loadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err == nil || stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.Wrap(err, errors.ErrorTypeConfig, "failed to load env file").
		WithContext("key", filename)
}

// newRootCmd builds the command tree; logs go to logOutput
func newRootCmd(logOutput io.Writer) *cobra.Command {
	log := zerolog.Nop()

	// run defers handler construction until the root has configured logging
	run := func(execute func(zerolog.Logger) func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return execute(log)(cmd, args)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "numberfacts",
		Short: "Operate the numberfacts Lambda functions",
		Long: `numberfacts runs, invokes, serves and documents the number fact handler
and its sibling prime counter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log = logger.InitLogger(&logger.Config{
				Level:      cfg.Logger.Level,
				Format:     cfg.Logger.Format,
				WithCaller: cfg.Logger.WithCaller,
				Output:     logOutput,
			})
			cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", config.DefaultAPIURL, "Trivia API base URL")
	flags.Duration("timeout", 0, "Upstream request timeout (0 leaves it to the caller)")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "pretty", "Log format (pretty or json)")
	flags.Bool("debug", false, "Enable debug logging with caller information")

	invokeCmd := &cobra.Command{
		Use:   "invoke [number] [type]",
		Short: "Run the number fact handler and print its envelope",
		Long: `Run the number fact handler in-process, or against a deployed copy with
--function (Lambda) or --url (HTTP endpoint). Missing arguments are left out
of the event body and reach the trivia API as "undefined".`,
		Args: cobra.MaximumNArgs(2),
		RunE: run(func(l zerolog.Logger) func(*cobra.Command, []string) error {
			return cli.NewInvokeHandler(l).Execute
		}),
	}
	invokeCmd.Flags().String("function", "", "Invoke this deployed Lambda function")
	invokeCmd.Flags().String("url", "", "POST the event body to this endpoint")
	invokeCmd.Flags().String("body", "", "Raw event body, overrides the arguments")
	invokeCmd.Flags().Bool("body-only", false, "Print only the response body")

	primesCmd := &cobra.Command{
		Use:   "primes <max>",
		Short: "Count primes up to max with the prime counter handler",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(l zerolog.Logger) func(*cobra.Command, []string) error {
			return cli.NewPrimesHandler(l).Execute
		}),
	}
	primesCmd.Flags().Bool("body-only", false, "Print only the response body")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve both handlers over HTTP like API Gateway would",
		Args:  cobra.NoArgs,
		RunE: run(func(l zerolog.Logger) func(*cobra.Command, []string) error {
			return cli.NewServeHandler(l).Execute
		}),
	}
	serveCmd.Flags().String("listen", ":3000", "Listen address")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the handlers as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: run(func(l zerolog.Logger) func(*cobra.Command, []string) error {
			return cli.NewMCPHandler(l).Execute
		}),
	}
	mcpCmd.Flags().String("mcp-desc", "", "Server instructions sent to MCP clients")

	docsCmd := &cobra.Command{
		Use:   "docs [path]",
		Short: "Render the HTTP contract",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(l zerolog.Logger) func(*cobra.Command, []string) error {
			return cli.NewDocsHandler(l).Execute
		}),
	}
	docsCmd.Flags().StringP("request", "X", "", "Only show this HTTP method")
	docsCmd.Flags().String("file", "", "Render this OpenAPI file instead of the embedded contract")

	rootCmd.AddCommand(invokeCmd, primesCmd, serveCmd, mcpCmd, docsCmd)
	return rootCmd
}
