package main

import "github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/cli"

func main() {
	cli.Execute()
}
