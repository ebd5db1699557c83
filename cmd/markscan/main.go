package main

import "github.com/Yara1604/InnovNation-Hackathon/cmd/markscan/cmd"

func main() {
	cmd.Execute()
}
