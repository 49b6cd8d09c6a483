package main

import "github.com/GriffinCanCode/AgentOS/desktop/cmd/desktop/commands"

func main() {
	commands.Execute()
}
