//go:build cli
// +build cli

package main

import (
	_ "shopzone.GO/custom"

	"shopzone.GO/cmd"
	"shopzone.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
