package cli

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines one imgstore subcommand.
type Command struct {
	// Flags defines command-specific flags, nil for purely positional
	// commands. Exec parses them itself so it can map parse failures onto
	// the error taxonomy.
	Flags *flag.FlagSet

	// Usage is the command name followed by its argument spellings.
	Usage string

	// Short is the one-line description shown in the usage listing.
	Short string

	// Help lines printed indented under the usage entry, before the flag
	// table.
	Help []string

	// Exec runs the command. args excludes the command name.
	Exec func(out io.Writer, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "imgstore [COMMAND] [ARGUMENTS]")

	for _, cmd := range commands {
		fprintf(w, "  %s: %s\n", cmd.Usage, cmd.Short)

		for _, line := range cmd.Help {
			fprintf(w, "      %s\n", line)
		}

		if cmd.Flags != nil && cmd.Flags.HasFlags() {
			fprintf(w, "%s", cmd.Flags.FlagUsages())
		}
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func fprintf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}
