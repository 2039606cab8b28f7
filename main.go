package main

import (
	_ "time/tzdata"

	"github.com/jmehdipour/lead-gateway/cmd"
)

func main() {
	cmd.Execute()
}
