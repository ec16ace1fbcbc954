package domain

import "strings"

// EntityClassification partitions the requested entity names into the ones
// found in the account and the ones that are not. Both keep request order.
type EntityClassification struct {
	Valid   []string
	Invalid []string
}

// ParseEntityNames splits a comma separated list, trimming every entry.
// Entries that are empty after trimming are dropped.
func ParseEntityNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
