//go:build cli
// +build cli

package main

import (
	_ "mixtape.GO/custom"

	"mixtape.GO/cmd"
	"mixtape.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
