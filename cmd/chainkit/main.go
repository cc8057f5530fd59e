package main

import "chainkit/cmd/chainkit/commands"

func main() {
	commands.Execute()
}
