package main

import (
	"os"

	"github.com/mtmanju/mtm-money-maths-sub000/cmd/finplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
