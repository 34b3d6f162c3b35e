package main

import (
	"os"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
