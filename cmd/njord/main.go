package main

import (
	"github.com/njordgeo/njord/cmd/njord/cmd"
)

func main() {
	cmd.Execute()
}
