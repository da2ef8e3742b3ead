package columnstore

import "github.com/pkg/errors"

// ErrRowNotFound is returned by GetRow when no row exists under the key
var ErrRowNotFound = errors.New("row not found")

func copyColumns(columns map[string]string) map[string]string {
	out := make(map[string]string, len(columns))
	for k, v := range columns {
		out[k] = v
	}
	return out
}
