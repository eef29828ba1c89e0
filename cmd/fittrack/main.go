package main

import "fittrack/internal/cli"

func main() {
	cli.Execute()
}
