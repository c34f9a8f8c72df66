package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/ramprice"
	"github.com/fwojciec/ramprice/yaml"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	h, skips, err := readHistory(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	records, loadSkips := ramprice.LoadHistory(h)
	skips = append(skips, loadSkips...)
	logSkips(deps, skips)

	added, err := deps.Records.CreateRecords(deps.Ctx, records)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ramprice.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d new records from %s (%d already stored, %d skipped)\n",
		added, c.Path, len(records)-added, len(skips))
	return nil
}

// readHistory decodes the YAML history file at path.
func readHistory(path string) (ramprice.History, []ramprice.Skip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return yaml.Decode(f)
}
