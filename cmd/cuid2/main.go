package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	serverrun "github.com/visus-io/cuid2/internal/cmd/server"
	cfgpkg "github.com/visus-io/cuid2/internal/config"
	pebblestore "github.com/visus-io/cuid2/internal/storage/pebble"
	"github.com/visus-io/cuid2/pkg/cuid2"
	logpkg "github.com/visus-io/cuid2/pkg/log"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cuid2",
		Short: "cuid2 identifier CLI",
		Long:  "Generate and validate collision-resistant identifiers, or run the minting server.",
	}

	// generate
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			length, _ := cmd.Flags().GetInt("length")
			for i := 0; i < count; i++ {
				id, err := cuid2.NewWithLength(length)
				if err != nil {
					return err
				}
				fmt.Println(id.String())
			}
			return nil
		},
	}
	generateCmd.Flags().IntP("count", "n", 1, "Number of identifiers to generate")
	generateCmd.Flags().IntP("length", "l", cuid2.DefaultLength, "Identifier length (4-32)")
	rootCmd.AddCommand(generateCmd)

	// validate
	validateCmd := &cobra.Command{
		Use:   "validate <id>",
		Short: "Check identifier format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetInt("length")
			valid := false
			if cmd.Flags().Changed("length") {
				valid = cuid2.IsValidLen(args[0], length)
			} else {
				valid = cuid2.IsValid(args[0])
			}
			fmt.Println(valid)
			if !valid {
				os.Exit(1)
			}
			return nil
		},
	}
	validateCmd.Flags().IntP("length", "l", 0, "Require an exact length")
	rootCmd.AddCommand(validateCmd)

	// hex36
	hex36Cmd := &cobra.Command{
		Use:   "hex36 <hex>",
		Short: "Convert a hex string to base 36",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(cuid2.HexToBase36(args[0]))
		},
	}
	rootCmd.AddCommand(hex36Cmd)

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the cuid2 HTTP server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			configPath, _ := cmd.Flags().GetString("config")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "interval":
				mode = pebblestore.FsyncModeInterval
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			cfgpkg.FromEnv(&cfg)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				HTTPAddr:      httpAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
				Logger:        buildLogger(logLevel, logFormat),
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("data-dir", "", "Data directory (default: OS-specific application data directory)")
	serverStartCmd.Flags().String("http", ":8080", "HTTP listen address")
	serverStartCmd.Flags().String("config", "", "Path to JSON config file")
	serverStartCmd.Flags().String("fsync", "always", "Fsync mode: always|interval|never")
	serverStartCmd.Flags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms")
	serverStartCmd.Flags().String("log-level", os.Getenv("CUID_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("CUID_LOG_FORMAT"), "Log format: text|json")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildLogger(level, format string) logpkg.Logger {
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if format == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	return logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
}
