// edututor — educational tutoring assistant.
// Classifies questions, refuses code requests, and sanitizes every
// generated answer so no runnable code reaches the learner.
package main

import "github.com/ppiankov/edututor/internal/cli"

func main() {
	cli.Execute()
}
