package main

import "github.com/Peacockli/webfishing-midi/cmd"

func main() {
	cmd.Execute()
}
