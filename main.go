// Command rlifesrc searches for periodic patterns in 2D cellular automata.
package main

import "github.com/telepair/rlifesrc-go/cmd"

func main() {
	cmd.Execute()
}
