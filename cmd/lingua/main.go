package main

import (
	"os"

	"github.com/marufibnehossain/Language-Learning-Website/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
