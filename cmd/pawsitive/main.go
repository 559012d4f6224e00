package main

import "github.com/diogo/pawsitive/internal/commands"

func main() {
	commands.Execute()
}
