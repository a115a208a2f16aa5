package main

import (
	"log"

	"github.com/kuntur-detector/case-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
