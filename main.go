package main

import "github.com/jcdickinson/jsdocgen/cmd"

func main() {
	cmd.Execute()
}
