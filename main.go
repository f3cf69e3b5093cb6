package main

import "github.com/theirongolddev/salarygap/cmd"

func main() {
	cmd.Execute()
}
