package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  sortle run [--trace=<file>] [--max-steps=N] <file.sortle>")
	fmt.Fprintln(os.Stderr, "  sortle <file.sortle>")
	fmt.Fprintln(os.Stderr, "  sortle step <file.sortle>")
	fmt.Fprintln(os.Stderr, "  sortle fetch [--cache=<dir>] [--config=<file>] <source-name>")
	fmt.Fprintln(os.Stderr, "  sortle --version")
}
