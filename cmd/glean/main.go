package main

import "github.com/mvp-joe/project-glean/internal/cli"

func main() {
	cli.Execute()
}
