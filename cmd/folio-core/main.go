package main

// @title           Folio Core API
// @version         1.0
// @description     Content synchronization API for the portfolio site: load cascade, mutations, persistence, change history and editor session.

// @contact.name   Folio Labs
// @contact.url    https://github.com/folio-labs/folio-core/issues

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
