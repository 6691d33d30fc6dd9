package repository

import (
	"fmt"
	"strings"
)

// applySensitiveFields returns a copy of fields in which every field named in
// the comma-separated list has its value replaced by the hasher's output.
// Names absent from the payload are silently ignored: callers may designate
// fields that happen not to be present. Matching is case-insensitive, like
// record lookups.
func (r *Repository) applySensitiveFields(fields map[string]string, sensitiveCSV string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	if strings.TrimSpace(sensitiveCSV) == "" {
		return out, nil
	}

	for _, name := range strings.Split(sensitiveCSV, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for k, v := range out {
			if !strings.EqualFold(k, name) {
				continue
			}
			hashed, err := r.hasher.Hash(v, r.hashCost)
			if err != nil {
				return nil, fmt.Errorf("hashing field %s: %w", k, err)
			}
			out[k] = hashed
		}
	}
	return out, nil
}
