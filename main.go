package main

import (
	"log"

	"github.com/denisxab/finding-favorite-job/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
