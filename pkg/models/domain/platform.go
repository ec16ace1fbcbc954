package domain

import (
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformAWS        Platform = "aws"
	PlatformAzure      Platform = "azure"
	PlatformGoogle     Platform = "google"
	PlatformKubernetes Platform = "kubernetes"
)

// Rule bundles evaluated per platform. Switching a platform to another
// ruleset means editing this table.
var platformBundles = map[Platform]int64{
	PlatformAWS:        902486,
	PlatformAzure:      902546,
	PlatformGoogle:     -128,
	PlatformKubernetes: -72,
}

// Platforms lists the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformAWS, PlatformAzure, PlatformGoogle, PlatformKubernetes}
}

// ParsePlatform case-folds s and maps it onto a supported platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := platformBundles[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
	}
	return p, nil
}

func (p Platform) BundleID() (int64, error) {
	id, ok := platformBundles[p]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, string(p))
	}
	return id, nil
}

func (p Platform) String() string {
	return string(p)
}
