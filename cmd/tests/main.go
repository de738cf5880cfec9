package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/garciat/roto/check"
	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/compile"
)

func main() {
	testsPath := flag.String("dir", "../tests", "corpus directory")
	examplesPath := flag.String("examples", "../examples", "example declaration directories")
	flag.BoolVar(&check.DebugAll, "v", false, "enable all debug output")
	flag.Parse()

	entries, err := os.ReadDir(*testsPath)
	if err != nil {
		panic(err)
	}

	count := 0
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			testDir(*testsPath, entry.Name())
		case filepath.Ext(entry.Name()) != ".json":
			continue
		default:
			testSingleFile(*testsPath, entry.Name())
		}
		count++
	}

	examples, err := os.ReadDir(*examplesPath)
	if err != nil {
		panic(err)
	}
	for _, entry := range examples {
		if entry.IsDir() {
			testExample(*examplesPath, entry.Name())
			count++
		}
	}

	fmt.Printf("ok %d cases\n", count)
}

func testDir(parent, name string) {
	path := filepath.Join(parent, name)
	runCase(name, func(unit *compile.CompilationUnit) error {
		return unit.AddDir(path)
	})
}

func testSingleFile(parent, name string) {
	path := filepath.Join(parent, name)
	runCase(name, func(unit *compile.CompilationUnit) error {
		return unit.AddFile(path)
	})
}

// testExample only requires the example to resolve.
func testExample(parent, name string) {
	path := filepath.Join(parent, name)
	runCase("pass_"+name, func(unit *compile.CompilationUnit) error {
		return unit.AddDir(path)
	})
}

func runCase(name string, load func(*compile.CompilationUnit) error) {
	_, err, stack := TryStack(func() int {
		unit := compile.NewCompilationUnit()
		if err := load(unit); err != nil {
			panic(err)
		}
		if _, err := unit.CompileDefault(); err != nil {
			panic(err)
		}
		if err := unit.Expectations(); err != nil {
			panic(err)
		}
		return 0
	})

	switch {
	case strings.HasPrefix(name, "fail_"):
		if err == nil {
			failExpectedError(name)
		}
		if check.DebugAll {
			fmt.Printf("ok %s: %v\n", name, err)
		}
	case strings.HasPrefix(name, "pass_"):
		if err != nil {
			failExpectedPass(name, err, stack)
		}
	default:
		panic(fmt.Errorf("unexpected file %s", name))
	}
}

func failExpectedError(name string) {
	fmt.Printf("FAIL %s: expected error\n", name)
	os.Exit(1)
}

func failExpectedPass(name string, err error, stack string) {
	fmt.Printf("FAIL %s: unexpected error:\n%v\n", name, err)
	if stack != "" {
		fmt.Printf("%s\n", dropStacks(stack, 3))
	}
	os.Exit(1)
}

func dropStacks(stack string, n int) string {
	lines := strings.Split(stack, "\n")
	if len(lines) <= 1+n*2 {
		return stack
	}
	return strings.Join(lines[1+n*2:], "\n")
}
