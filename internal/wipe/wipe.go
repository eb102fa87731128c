// Package wipe implements best-effort cascading removal of stored wallet data.
package wipe

import (
	"fmt"
	"strings"
)

// Store deletes stored values by key.
type Store interface {
	Delete(key string) error
}

// walletKeys are removed in order. The seeded sentinel goes last so an
// interrupted wipe leaves the store marked seeded rather than half-fresh
// and re-seedable.
var walletKeys = []string{
	"session",
	"transactions",
	"balance",
	"contacts",
	"users",
	"seeded",
}

// StepStatus records the outcome of one removal step.
type StepStatus struct {
	Description string
	Err         error
}

// Result summarizes a completed wipe.
type Result struct {
	Steps []StepStatus
}

// HasErrors returns true if any step failed.
func (r Result) HasErrors() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Summary returns a human-readable summary of the wipe result.
func (r Result) Summary() string {
	var b strings.Builder

	if r.HasErrors() {
		b.WriteString("wallet reset (with errors)")
	} else {
		b.WriteString("wallet reset")
	}

	for _, s := range r.Steps {
		if s.Err != nil {
			fmt.Fprintf(&b, "\n- %s: %v", s.Description, s.Err)
		} else {
			fmt.Fprintf(&b, "\n- %s", s.Description)
		}
	}

	return b.String()
}

// Plan returns human-readable descriptions of what a wipe will remove.
// Used to populate the confirmation prompt.
func Plan() []string {
	steps := make([]string, 0, len(walletKeys))
	for _, key := range walletKeys {
		steps = append(steps, "remove "+key)
	}
	return steps
}

// Execute removes every stored wallet key. It is best-effort: each step is
// attempted regardless of whether previous steps failed. The next open of
// the store re-seeds the demo data.
func Execute(s Store) Result {
	var result Result
	for _, key := range walletKeys {
		result.Steps = append(result.Steps, StepStatus{
			Description: "remove " + key,
			Err:         s.Delete(key),
		})
	}
	return result
}
