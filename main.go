package main

import "github.com/quodlibetor/jsonlogprint/internal/cmd"

func main() {
	cmd.Execute()
}
