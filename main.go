package main

import "github.com/twofourteen/hr-portal/cmd"

func main() {
	cmd.Execute()
}
