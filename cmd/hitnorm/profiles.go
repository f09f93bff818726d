// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/hitnorm/internal/engine"
	"github.com/pdiddy/hitnorm/pkg/types"
)

// loadProfiles decodes the engines.<name> section of the config.
func loadProfiles(v *viper.Viper) (map[string]types.EngineConfig, error) {
	profiles := map[string]types.EngineConfig{}
	if err := v.UnmarshalKey("engines", &profiles); err != nil {
		return nil, fmt.Errorf("reading engine profiles: %w", err)
	}
	return profiles, nil
}

// resolveEngine looks name up as a profile first, then as an adapter. A
// profile without an explicit engine uses its own name as the adapter.
func resolveEngine(reg *engine.Registry, profiles map[string]types.EngineConfig, name string) (engine.Engine, types.EngineConfig, error) {
	cfg, isProfile := profiles[name]
	adapter := name
	if isProfile && cfg.Engine != "" {
		adapter = cfg.Engine
	}
	if isProfile && cfg.ID == "" {
		cfg.ID = name
	}

	e, ok := reg.Get(adapter)
	if !ok {
		known := append(reg.Names(), profileNames(profiles)...)
		return nil, types.EngineConfig{}, fmt.Errorf("unknown engine %q (known: %s)", name, strings.Join(known, ", "))
	}
	cfg.Engine = adapter
	return e, cfg, nil
}

func profileNames(profiles map[string]types.EngineConfig) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
