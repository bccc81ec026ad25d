package main

import "github.com/yagyapandeya/midi-degradation-toolkit/cmd"

func main() {
	cmd.Execute()
}
