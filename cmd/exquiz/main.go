// Package main provides the CLI entry point for exquiz-go.
package main

func main() {
	Execute()
}
