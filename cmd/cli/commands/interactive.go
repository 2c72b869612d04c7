package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run several commands over one database connection",
		Long: `Start an interactive session that keeps the database connection and Sheets authorization open.
Type 'help' to see available commands, 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd.Parent(), os.Stdout)
			fmt.Fprintln(s.out, "\nStarting interactive session. Type 'help' for available commands, 'exit' or 'quit' to leave.")
			return s.run(os.Stdin)
		},
	}
}

// session dispatches input lines to sibling commands without re-running the root pre-run hooks
type session struct {
	commands map[string]*cobra.Command
	out      io.Writer
}

func newSession(root *cobra.Command, out io.Writer) *session {
	commands := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help", "serve":
			continue
		}
		commands[sub.Name()] = sub
	}
	return &session{commands: commands, out: out}
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		case "help":
			s.printHelp()
			continue
		}

		if err := s.execute(parts[0], parts[1:]); err != nil {
			fmt.Fprintf(s.out, "✗ Error: %v\n\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func (s *session) execute(name string, args []string) error {
	target, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %s (type 'help' for available commands)", name)
	}

	resetFlags(target.Flags())
	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	args = target.Flags().Args()
	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}

	if target.RunE != nil {
		return target.RunE(target, args)
	}
	if target.Run != nil {
		target.Run(target, args)
	}
	return nil
}

// resetFlags restores flag defaults left over from a previous invocation
func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		if sv, ok := flag.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			flag.Value.Set(flag.DefValue)
		}
		flag.Changed = false
	})
}

func (s *session) printHelp() {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(s.out, "\nAvailable commands:")
	for _, name := range names {
		fmt.Fprintf(s.out, "  %-32s %s\n", s.commands[name].Use, s.commands[name].Short)
	}
	fmt.Fprintln(s.out, "\n  help                             Show this help message")
	fmt.Fprintln(s.out, "  exit, quit                       Exit the interactive session")
}
