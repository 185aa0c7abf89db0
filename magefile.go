//go:build mage

package main

import (
	"github.com/magefile/mage/sh"
)

var Default = Build

func Build() error {
	return sh.Run("go", "build", "-o", "bin/papyrusctl", "./cmd/papyrusctl")
}

func Test() error {
	return sh.RunV("go", "test", "./...")
}

func Clean() error {
	return sh.Rm("bin")
}
