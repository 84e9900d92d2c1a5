//go:build tinygo

// Command ranger-tinygo runs a ranger node on a board with an HC-SR04 wired
// to D10 (trigger) and D9 (echo), standing in for ADI ports 'A' and 'B'.
package main

import (
	"machine"

	"github.com/merliot/sonar"
	"github.com/merliot/sonar/adi"
	"github.com/merliot/sonar/adi/hcsr04"
	"github.com/merliot/sonar/ranger"
)

func main() {
	brain := hcsr04.New(hcsr04.Pins{
		1: machine.D10,
		2: machine.D9,
	})

	r := ranger.New("ranger01", "ranger", "ranger").(*ranger.Ranger)
	if err := r.Configure(brain, adi.NewRegistry()); err != nil {
		println("Ranger configure failed:", err.Error())
		return
	}

	println("Ultrasonic starts")
	sonar.NewRunner(r).Run()
}
