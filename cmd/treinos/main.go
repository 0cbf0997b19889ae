package main

import "github.com/dmaraujo/treinos/internal/cli"

func main() {
	cli.Execute()
}
