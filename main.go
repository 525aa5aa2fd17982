package main

import "github.com/kamusis/kiosk/cmd"

func main() {
	cmd.Execute()
}
