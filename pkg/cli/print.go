package cli

import "github.com/nksaraf/magiql/pkg/cli/internal/output"

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose (progress messages, hints) must go to stderr
// or be omitted entirely. textFn is called only in text mode.
func (a *app) printResult(data any, textFn func() error) error {
	if a.jsonOutput {
		return output.JSON(a.stdout, data)
	}
	return textFn()
}
