package main

import (
	"github.com/Reinvik/nexus-lean-sub000/cmd/client/cmd"
)

func main() {
	cmd.Execute()
}
