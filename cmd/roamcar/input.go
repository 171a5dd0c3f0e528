package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// prompt prints a label and reads a single trimmed line.
func (a *App) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptDefault prints a label with a default value; an empty entry keeps
// the default.
func (a *App) promptDefault(label, def string) string {
	fmt.Fprintf(a.out, "%s [%s]: ", label, def)
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (piped input, tests).
func (a *App) promptPassword(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pw, err := readPassword(fd)
		fmt.Fprintln(a.out)
		if err != nil {
			return ""
		}
		return string(pw)
	}
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// confirm asks a yes/no question and returns true on "y"/"yes".
func (a *App) confirm(label string) bool {
	answer := strings.ToLower(a.prompt(label + " (y/n)"))
	return answer == "y" || answer == "yes"
}
