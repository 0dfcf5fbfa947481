package main

import (
	cmd "tapas-dl/cmd/tapasdl"
)

func main() {
	cmd.Execute()
}
