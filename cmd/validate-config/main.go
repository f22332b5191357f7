// Command validate-config checks an overrides file against the built-in
// multitrack recording rules and exits non-zero on error violations.
package main

import "meet-flagcheck/internal/cli"

func main() {
	cli.ExecuteValidateConfig()
}
