//go:build ignore

// Builds kitara binaries for selected platforms: go run build.go -platforms linux-amd64
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// rtmidi driver is a cgo package, every target needs a C++ cross compiler
var availableTargets = []target{
	{goos: "linux", goarch: "arm", goarm: "6", cxx: "arm-linux-gnueabi-g++", cc: "arm-linux-gnueabi-gcc"},
	{goos: "linux", goarch: "arm", goarm: "7", cxx: "arm-linux-gnueabihf-g++", cc: "arm-linux-gnueabihf-gcc"},
	{goos: "linux", goarch: "arm64", cxx: "aarch64-linux-gnu-g++", cc: "aarch64-linux-gnu-gcc"}, // ARMv8
	{goos: "linux", goarch: "amd64"},
}

type target struct {
	goos   string
	goarch string
	goarm  string
	cc     string
	cxx    string
}

func (t *target) String() string {
	if t.goarm != "" {
		return fmt.Sprintf("%s-%s-v%s", t.goos, t.goarch, t.goarm)
	}
	return fmt.Sprintf("%s-%s", t.goos, t.goarch)
}

type buildError struct {
	target         target
	project, base  string
	stdout, stderr string
}

func (e buildError) Error() string {
	return fmt.Sprintf("building %s for %s failed", e.project, e.target.String())
}

func build(target target, project, basename string) error {
	var binaryPath = fmt.Sprintf("./builds/%s-%s", basename, target.String())

	var envVars = []string{
		fmt.Sprintf("GOOS=%s", target.goos),
		fmt.Sprintf("GOARCH=%s", target.goarch),
		"CGO_ENABLED=1",
	}
	if target.goarm != "" {
		envVars = append(envVars, fmt.Sprintf("GOARM=%s", target.goarm))
	}
	if target.cc != "" {
		envVars = append(envVars, fmt.Sprintf("CC=%s", target.cc))
	}
	if target.cxx != "" {
		envVars = append(envVars, fmt.Sprintf("CXX=%s", target.cxx))
	}

	params := []string{"build", "-o", binaryPath}
	if tags != "" {
		params = append(params, "-tags", tags)
	}
	if race {
		params = append(params, "-race")
	}
	params = append(params, project)

	cmd := exec.Command("go", params...)
	cmd.Env = append(os.Environ(), envVars...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return buildError{
			target:  target,
			project: project,
			base:    basename,
			stdout:  stdout.String(),
			stderr:  stderr.String(),
		}
	}
	return nil
}

func selectTargets(selection string) ([]target, error) {
	if selection == "all" {
		return availableTargets, nil
	}

	var selected []target
	for _, rt := range strings.Split(selection, ",") {
		var found bool
		for _, t := range availableTargets {
			if t.String() == rt {
				selected = append(selected, t)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("target not found: %s", rt)
		}
	}
	return selected, nil
}

var selection, project, basename, tags string
var race bool

func init() {
	var targets []string
	for _, target := range availableTargets {
		targets = append(targets, target.String())
	}
	flag.StringVar(&selection, "platforms", "linux-amd64", fmt.Sprintf(
		"comma-separated target platform list or \"all\"\navailable: %s", strings.Join(targets, ",")),
	)
	flag.StringVar(&project, "project", "./cmd/kitara/", "choose project directory")
	flag.StringVar(&basename, "base", "kitara", "base filename for output binaries")
	flag.StringVar(&tags, "tags", "", "comma-separated build tags")
	flag.BoolVar(&race, "race", false, "include race detector")
	flag.Parse()
}

func main() {
	log.SetFlags(log.Ltime)

	selectedTargets, err := selectTargets(selection)
	if err != nil {
		log.Printf("%s", err)
		os.Exit(1)
	}

	var names []string
	for _, t := range selectedTargets {
		names = append(names, t.String())
	}
	log.Printf("selected targets: %s", strings.Join(names, ", "))

	var buildErrors = make(chan buildError, len(selectedTargets))

	wg := sync.WaitGroup{}
	log.Printf("engaging parallel building for %d targets\n", len(selectedTargets))
	for _, t := range selectedTargets {
		wg.Add(1)
		go func(target target) {
			defer wg.Done()
			log.Printf("building target %s          %s", project, target.String())
			err := build(target, project, basename)
			if err != nil {
				log.Printf("building target %s failed:  %s", project, target.String())
				buildErrors <- err.(buildError)
				return
			}
			log.Printf("building target %s success: %s", project, target.String())
		}(t)
	}
	wg.Wait()
	close(buildErrors)

	var ok = true
	for err := range buildErrors {
		ok = false
		fmt.Printf("\n>>> Failed build: project: %s, base: %s, target: %s\n", err.project, err.base, err.target.String())
		if err.stdout != "" {
			fmt.Printf("======== STDOUT ========\n")
			fmt.Printf("%s", err.stdout)
			fmt.Printf("========================\n")
		}
		if err.stderr != "" {
			fmt.Printf("======== STDERR ========\n")
			fmt.Printf("%s", err.stderr)
			fmt.Printf("========================\n")
		}
	}

	if !ok {
		os.Exit(1)
	}
}
