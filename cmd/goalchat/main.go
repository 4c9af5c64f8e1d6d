// Command goalchat is a terminal chat client for the World Cup assistant.
package main

import "github.com/diogo/goalchat/internal/commands"

func main() {
	commands.Execute()
}
