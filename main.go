package main

import "github.com/magarciasopo/nagios-plugins/cmd"

func main() {
	cmd.Execute()
}
