package main

import (
	"os"

	"gitlab.com/dirk.krummacker/persons-service/cmd/client/commands"
)

// Usage example on the command line:
// > go run main.go bench
// > go run main.go import people.yaml --server=http://localhost:8080
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
