package main

import (
	"os"

	"github.com/strictcheck/strictcheck/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
