package main

import "unifi-admin-remover/cmd"

func main() {
	cmd.Execute()
}
