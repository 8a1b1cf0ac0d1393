// Package main provides the partwright command line tool.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/partwright/partwright/cmd"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
