//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a JSON request body before it is sent.
type Mutation func(m map[string]any)

// Payload turns a request DTO into its JSON object form and applies muts.
func Payload(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, f := range muts {
		if f != nil {
			f(m)
		}
	}
	return m
}

func With(key string, value any) Mutation {
	return func(m map[string]any) { m[key] = value }
}

func Without(key string) Mutation {
	return func(m map[string]any) { delete(m, key) }
}
