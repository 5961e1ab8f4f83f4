package main

import "github.com/vidgrab/vidgrab/cmd"

func main() {
	cmd.Execute()
}
