// Package main is the entry point for the cify CLI.
package main

import "cify.dev/pkg/cify/cmd"

func main() {
	cmd.Execute()
}
