package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "javacheck",
	Short:         "Compile-check Java sources in isolated workspaces",
	Long:          "javacheck compiles Java sources in an isolated, ephemeral workspace and reports structured diagnostics with fix suggestions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the javacheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("javacheck %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
}
