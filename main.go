package main

import "github.com/nikogura/storyboard-scorer/cmd"

func main() {
	cmd.Execute()
}
