package main

import (
	"os"

	"github.com/martijn/clientreg/internal/cli"
)

//	@title			Client Registry API
//	@version		1.0
//	@description	CRUD API for clients and their phone numbers.
//	@BasePath		/

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
