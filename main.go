package main

import "zigls/internal/cli"

func main() {
	cli.Execute()
}
