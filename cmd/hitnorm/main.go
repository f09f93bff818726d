// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hitnorm CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/hitnorm/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from --debug before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the hitnorm CLI.
var rootCmd = &cobra.Command{
	Use:   "hitnorm",
	Short: "Normalize search-engine hits into one record shape",
	Long: `hitnorm reads search results captured from academic and patent engines
(arXiv, OpenAlex, Semantic Scholar, PatentsView) or curated hit files, maps
every hit onto a normalized record, merges hits that several engines returned,
and writes the records as a table, JSON, CSL-YAML, or a hit file.

Engine profiles in hitnorm.yaml bind an adapter to an engine id, decorator,
and display configuration that are stamped onto every record.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		log, err := logging.New(debug)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = log
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hitnorm.yaml or ~/.config/hitnorm/hitnorm.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "verbose development logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hitnorm")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hitnorm"))
		}
	}

	viper.SetEnvPrefix("HITNORM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintln(os.Stderr, "Reading config:", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
