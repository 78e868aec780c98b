package main

import "github.com/unitylens/unitylens/internal/cli"

func main() {
	cli.Execute()
}
