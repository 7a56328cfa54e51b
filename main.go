package main

import (
	"github.com/steipete/peekaboo-go/cmd"
	"github.com/steipete/peekaboo-go/internal/uithread"
)

func main() {
	// Accessibility and event synthesis must run on the main OS thread;
	// uithread.Run pins it and services marshaled calls while the CLI
	// runs on a goroutine.
	uithread.Run(cmd.Execute)
}
