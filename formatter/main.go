package main

import (
	"io/ioutil"
	"log"
	"os"

	"git.solver4all.com/azaryc2s/ufl"
)

func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}

	for _, fileName := range os.Args[1:] {
		fileContent, err := ioutil.ReadFile(fileName)
		if err != nil {
			log.Printf("At %s: %s\n", fileName, err.Error())
			continue
		}
		writeBackFile(string(fileContent), fileName)
	}
}

func writeBackFile(fileContent, fileName string) {
	fileContent = ufl.SanitizeJsonArrayLineBreaks(fileContent)
	err := ioutil.WriteFile(fileName, []byte(fileContent), 0644)
	if err != nil {
		log.Printf("At %s: %s\n", fileName, err.Error())
		return
	}
}
