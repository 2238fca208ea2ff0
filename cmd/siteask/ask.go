package main

import (
	"fmt"

	"github.com/siteask/siteask"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Collection, c.Question)
	if err != nil {
		if siteask.ErrorCode(err) == siteask.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: collection %q not found. Use 'siteask collections' to see what is indexed.\n", c.Collection)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for i, src := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, src)
		}
	}

	return nil
}
