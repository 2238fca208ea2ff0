package main

import (
	"fmt"

	"github.com/siteask/siteask"
	siteaskhttp "github.com/siteask/siteask/http"
)

// Run executes the serve command. It blocks until the context is
// canceled, then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := siteaskhttp.NewServer()
	srv.Addr = c.Addr
	srv.IndexerService = deps.Indexer
	srv.AskerService = deps.Asker
	srv.StoreService = deps.Store
	srv.Logger = deps.Logger
	if deps.DB != nil {
		srv.DBStats = deps.DB.Stats
	}

	if err := srv.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", srv.URL())

	<-deps.Ctx.Done()
	return srv.Close()
}
