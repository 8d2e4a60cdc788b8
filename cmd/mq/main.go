package main

import "morningquest/cmd/mq/root"

func main() {
	root.Execute()
}
