package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	DefaultProfile  = "DEFAULT"
	DefaultFileName = ".cspmcfg"
)

// Profile holds per-environment settings, e.g. a regional API host.
// Empty fields fall back to built-in defaults.
type Profile struct {
	Name   string
	Host   string
	Output string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultPath returns $HOME/.cspmcfg, or the bare file name when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// NewRegistry loads profiles from an ini file. A missing file yields an
// empty registry.
func NewRegistry(path string) (Registry, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &cfgRegistry{cfg: ini.Empty()}, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		if name == DefaultProfile {
			return &Profile{Name: name}, nil
		}
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:   name,
		Host:   section.Key("host").String(),
		Output: section.Key("output").String(),
	}, nil
}
