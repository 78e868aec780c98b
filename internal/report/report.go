// Package report renders an analysis Result for humans and downstream
// tools. The engine itself persists nothing; these writers are the caller's
// side of that contract.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/unitylens/unitylens/internal/analyzer"
)

// WriteJSON writes the full result as indented JSON.
func WriteJSON(w io.Writer, res *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
