package main

import "github.com/LegacyCodeHQ/platformext/cmd"

func main() {
	cmd.Execute()
}
