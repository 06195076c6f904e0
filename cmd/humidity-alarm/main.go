package main

import "github.com/givddul/humidity-alarm/cmd/humidity-alarm/cmd"

func main() {
	cmd.Execute()
}
