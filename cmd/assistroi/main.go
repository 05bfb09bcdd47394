package main

import "github.com/emiliopalmerini/assistroi/internal/cli"

func main() {
	cli.Execute()
}
