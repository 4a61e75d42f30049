package main

import (
	"os"

	"github.com/oinkcat/scripting-lang/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
