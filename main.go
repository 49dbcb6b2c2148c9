package main

import (
	"os"

	"github.com/PolarWolf314/vault2vault/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
