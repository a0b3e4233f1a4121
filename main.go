package main

import (
	_ "github.com/KimMachineGun/automemlimit"
	"github.com/speakeasy-api/textmerge/cmd"
	"go.uber.org/automaxprocs/maxprocs"
)

var version = "0.0.1"

func main() {
	// Batch merges size their worker pools from GOMAXPROCS; match it to the container's CPU quota.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	defer undo()

	cmd.Execute(version)
}
