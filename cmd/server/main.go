package main

import "checkin/cmd/server/cmd"

func main() {
	cmd.Execute()
}
