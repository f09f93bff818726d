// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hitnorm/internal/engine"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List engine adapters and configured profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Adapters:")
		for _, name := range engine.Default().Names() {
			fmt.Fprintf(w, "  %s\n", name)
		}

		profiles, err := loadProfiles(viper.GetViper())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			return nil
		}
		fmt.Fprintln(w, "\nProfiles:")
		for _, name := range profileNames(profiles) {
			p := profiles[name]
			adapter := p.Engine
			if adapter == "" {
				adapter = name
			}
			fmt.Fprintf(w, "  %-20s  adapter=%s  id=%s\n", name, adapter, p.EngineID(name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enginesCmd)
}
