package main

import (
	cmd "github.com/notaspie/notaspie/cmd/notaspie"
)

func main() {
	cmd.Execute()
}
