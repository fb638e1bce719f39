//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	BIN_DIR     = "bin"
	SERVER_NAME = "token-server"
	SERVER_PKG  = "./cmd/token-server"
)

func fmtPanic(format string, val ...any) {
	panic(fmt.Sprintf(format, val...))
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the unit tests with the race detector.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Build compiles the token server into bin/.
func Build() error {
	if err := os.MkdirAll(BIN_DIR, 0o755); err != nil {
		fmtPanic("Unable create %s. Err: %s", BIN_DIR, err)
	}

	env := map[string]string{"CGO_ENABLED": "0"}
	return sh.RunWithV(env, "go", "build", "-trimpath", "-o", path.Join(BIN_DIR, SERVER_NAME), SERVER_PKG)
}

// Run starts the token server with the local .env file.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(path.Join(BIN_DIR, SERVER_NAME))
}
