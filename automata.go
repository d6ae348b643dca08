package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/liran-funaro/automata/exec"
)

func main() {
	if err := exec.Execute(os.Args[0], os.Args[1:]...); err != nil {
		logrus.Fatal(err)
	}
}
