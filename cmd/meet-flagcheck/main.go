package main

import "meet-flagcheck/internal/cli"

func main() {
	cli.Execute()
}
