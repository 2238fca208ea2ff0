package main

import (
	"fmt"

	"github.com/siteask/siteask"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return siteask.Errorf(siteask.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Store.DeleteCollection(deps.Ctx, c.Name); err != nil {
		if siteask.ErrorCode(err) == siteask.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: collection %q not found. Use 'siteask collections' to see what is indexed.\n", c.Name)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted collection %q\n", c.Name)
	return nil
}
