// Package main provides the ifcmodel CLI.
package main

import "github.com/mesh-intelligence/ifcmodel/internal/cli"

func main() {
	cli.Execute()
}
