package main

import "github.com/OpenTraceLab/joyview/cmd/joyview/cmd"

func main() {
	cmd.Execute()
}
