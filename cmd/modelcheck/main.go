package main

import "github.com/marshallshelly/modelcheck/cmd/modelcheck/commands"

func main() {
	commands.Execute()
}
