//go:build mage

package main

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build builds the precheck binary with version metadata baked in.
func Build() error {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	ver, _ := sh.Output("git", "describe", "--tags", "--always")
	ldflags := fmt.Sprintf(
		"-X github.com/teleprompter-plus/precheck/internal/version.Version=%s "+
			"-X github.com/teleprompter-plus/precheck/internal/version.CommitHash=%s "+
			"-X github.com/teleprompter-plus/precheck/internal/version.BuildDate=%s",
		ver, hash, time.Now().UTC().Format(time.RFC3339),
	)
	return sh.Run("go", "build", "-ldflags", ldflags, "-o", "bin/precheck", "./cmd/precheck")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	return sh.RunV("go", "test", "-coverprofile=coverage.out", "./...")
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs vet plus golangci-lint when installed
func (l Lint) All() error {
	mg.Deps(l.Vet)
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println("golangci-lint not found, skipping (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}
