package cli

import (
	"io"
	"strings"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"

	flag "github.com/spf13/pflag"
)

// Run is the CLI entry point. args is os.Args[1:]. Returns the process exit
// code: 0 on success, the error taxonomy code otherwise. Failures print
// "ERROR: <msg>" to errOut followed by the usage text.
func Run(out, errOut io.Writer, args []string) int {
	globalFlags := flag.NewFlagSet("imgstore", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(&strings.Builder{})
	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")

	commands := allCommands()

	if err := globalFlags.Parse(args); err != nil {
		return fail(errOut, commands, imgstore.ErrInvalidArgument)
	}

	rest := globalFlags.Args()

	if *flagHelp {
		printUsage(out, commands)

		return 0
	}

	if len(rest) == 0 {
		return fail(errOut, commands, imgstore.ErrNotEnoughArguments)
	}

	name := rest[0]
	if name == "help" {
		printUsage(out, commands)

		return 0
	}

	for _, cmd := range commands {
		if cmd.Name() != name {
			continue
		}

		if err := cmd.Exec(out, rest[1:]); err != nil {
			return fail(errOut, commands, err)
		}

		return 0
	}

	return fail(errOut, commands, imgstore.ErrInvalidCommand)
}

func fail(errOut io.Writer, commands []*Command, err error) int {
	fprintf(errOut, "ERROR: %s\n", imgstore.Message(err))
	printUsage(errOut, commands)

	return imgstore.ExitCode(err)
}

func allCommands() []*Command {
	return []*Command{
		cmdHelp(),
		cmdList(),
		cmdCreate(),
		cmdRead(),
		cmdInsert(),
		cmdDelete(),
		cmdGC(),
	}
}

func cmdHelp() *Command {
	return &Command{
		Usage: "help",
		Short: "displays this help.",
		Exec: func(out io.Writer, _ []string) error {
			printUsage(out, allCommands())

			return nil
		},
	}
}
