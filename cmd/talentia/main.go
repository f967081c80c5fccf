package main

import (
	"github.com/talentia-labs/talentia/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
