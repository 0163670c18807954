package main

import "tablefinder/internal/cli"

func main() {
	cli.Execute()
}
