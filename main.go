package main

import "github.com/R3natoky/photoutm/cmd"

func main() {
	cmd.Execute()
}
