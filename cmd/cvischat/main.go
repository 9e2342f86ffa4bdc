package main

import "github.com/diogo/cvischat/internal/commands"

func main() {
	commands.Execute()
}
