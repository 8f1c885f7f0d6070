// wishctl is a terminal client for the Wishlane API. It signs in, keeps a
// local snapshot of the wish list, and edits wishes through the same HTTP
// surface the web client uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/wishlane/wishlane-backend/internal/client"
	"github.com/wishlane/wishlane-backend/pkg/apiclient"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "wishlane api base url")
	flag.Parse()

	api, err := apiclient.New(*server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid server url: %v\n", err)
		os.Exit(1)
	}

	controller, err := client.NewController(client.Params{API: api})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build controller: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp(api, controller)
	app.run(ctx)
}
