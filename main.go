package main

import "github.com/meysamhadeli/timekeep/cmd"

func main() {
	cmd.Execute()
}
