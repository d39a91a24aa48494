// cmd/draftctl/main.go
package main

import "github.com/javajoker/draft-backend/cmd/draftctl/commands"

func main() {
	commands.Execute()
}
