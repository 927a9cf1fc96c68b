package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	app := newApp(logrus.New())
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
