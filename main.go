package main

import "github.com/pravinpardeshi/ai-shopping-via-chatbot/cmd"

func main() {
	cmd.Execute()
}
