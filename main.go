package main

import "bookkeeper/cmd"

func main() {
	cmd.Execute()
}
