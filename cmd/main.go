package main

import (
	cmd "github.com/kerbaras/animes/cmd/animes"
)

func main() {
	cmd.Execute()
}
