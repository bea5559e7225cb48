// Package textutil holds the join primitives shared by the adapters.
// Both sources mirror pre-existing downstream column conventions: XML
// extractions join with ";" sorted, JSON extractions join with "|" in
// first-seen order. The delimiters are part of the output contract.
package textutil

import (
	"sort"
	"strings"
)

const (
	// SemiDelim joins XML-sourced multi-values.
	SemiDelim = ";"
	// PipeDelim joins JSON-sourced multi-values.
	PipeDelim = "|"
)

// JoinUniqueSorted trims entries, drops blanks, deduplicates, sorts, and
// joins with ";". Returns nil when nothing survives.
func JoinUniqueSorted(values []string) *string {
	seen := make(map[string]struct{}, len(values))
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return nil
	}
	sort.Strings(cleaned)
	joined := strings.Join(cleaned, SemiDelim)
	return &joined
}

// JoinFirstSeen drops blanks, deduplicates keeping first occurrence, and
// joins with "|" in input order. Returns nil when nothing survives.
func JoinFirstSeen(values []string) *string {
	seen := make(map[string]struct{}, len(values))
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return nil
	}
	joined := strings.Join(cleaned, PipeDelim)
	return &joined
}

// AppendUnique appends value to list unless it is blank or already present.
func AppendUnique(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
