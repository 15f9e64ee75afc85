package cmd

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDir = "kafka-admin-api"

// ConfigCandidates lists the places a configuration file is looked for, in
// order of preference.
func ConfigCandidates() []string {
	names := []string{"config.yml", "config.yaml"}
	var candidates []string
	for _, n := range names {
		candidates = append(candidates, "./"+n)
	}

	add := func(dir string) {
		if dir == "" {
			return
		}
		for _, n := range names {
			candidates = append(candidates, filepath.Join(dir, n))
		}
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			add(filepath.Join(appdata, appDir))
		}
		if pd := os.Getenv("PROGRAMDATA"); pd != "" {
			add(filepath.Join(pd, appDir))
		}
		if home != "" {
			add(filepath.Join(home, appDir))
		}
		return candidates
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, appDir))
	}
	if home != "" {
		add(filepath.Join(home, ".config", appDir))
		add(filepath.Join(home, "."+appDir))
	}
	add(filepath.Join("/etc", appDir))
	return candidates
}

// FindConfigPath returns KAFKA_ADMIN_CONFIG when set, else the first existing
// candidate, else ./config.yml.
func FindConfigPath() string {
	if p := os.Getenv("KAFKA_ADMIN_CONFIG"); p != "" {
		return p
	}
	for _, p := range ConfigCandidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "./config.yml"
}
