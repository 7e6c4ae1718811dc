package main

import (
	"fmt"

	wharfjokes "github.com/iver-wharf/wharf-jokes"
)

func main() {
	version, err := wharfjokes.GetVersion()
	if err != nil {
		fmt.Println("Failed to load version:", err)
	}
	execute(version)
}
