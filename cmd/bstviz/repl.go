package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/benz9527/bstviz/lib/tree"
	"github.com/benz9527/bstviz/viz"
)

const replHelp = `commands:
  insert N        insert the key N
  delete N        delete the key N
  traverse KIND   replay one traversal: inorder, preorder, postorder, levelorder
  traverse all    print every traversal as a table
  help            print this help
  quit            leave
`

func newReplCmd(config *baseConfiguration) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read tree commands from the standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.newSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()
			return runRepl(cmd, session)
		},
	}
}

func runRepl(cmd *cobra.Command, session *viz.Session) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	prompt(out)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			prompt(out)
			continue
		}
		arg := strings.Join(fields[1:], " ")
		var err error
		switch strings.ToLower(fields[0]) {
		case "insert", "i":
			err = session.InsertNode(cmd.Context(), arg)
		case "delete", "d":
			err = session.DeleteNode(cmd.Context(), arg)
		case "traverse", "t":
			if strings.EqualFold(arg, "all") {
				var results []viz.TraversalResult
				if results, err = session.TraverseAll(); err == nil {
					writeTraversalTable(out, results)
				}
				break
			}
			_, err = session.Traverse(cmd.Context(), arg)
		case "help", "h", "?":
			fmt.Fprint(out, replHelp)
		case "quit", "exit", "q":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q, type help\n", fields[0])
		}
		switch {
		case err == nil:
		case errors.Is(err, viz.ErrEmptyInput), errors.Is(err, viz.ErrInvalidInput):
			// Already notified.
		case errors.Is(err, tree.ErrUnknownTraversal):
			fmt.Fprintf(out, "! %v\n", err)
		default:
			return err
		}
		prompt(out)
	}
	return scanner.Err()
}

func prompt(out io.Writer) {
	fmt.Fprint(out, "bst> ")
}
