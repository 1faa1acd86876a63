package main

import "kassenbuch/internal/cli"

func main() {
	cli.Execute()
}
