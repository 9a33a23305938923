package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/benz9527/bstviz/lib/tree"
	"github.com/benz9527/bstviz/viz"
)

var defaultDemoKeys = []string{"5", "3", "8", "1", "4", "7", "9"}

func newDemoCmd(config *baseConfiguration) *cobra.Command {
	return &cobra.Command{
		Use:   "demo [N...]",
		Short: "Insert the keys, replay every traversal and print them as a table",
		Long:  `Insert the keys (default ` + strings.Join(defaultDemoKeys, " ") + `) one by one, then replay the four traversals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = defaultDemoKeys
			}
			session, err := config.newSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()
			return runDemo(cmd, session, args)
		},
	}
}

func runDemo(cmd *cobra.Command, session *viz.Session, keys []string) error {
	for _, key := range keys {
		if err := session.InsertNode(cmd.Context(), key); err != nil {
			return errors.Wrapf(err, "insert %q", key)
		}
	}
	for _, kind := range tree.TraversalKinds {
		if _, err := session.Traverse(cmd.Context(), kind.String()); err != nil {
			return err
		}
	}
	results, err := session.TraverseAll()
	if err != nil {
		return err
	}
	writeTraversalTable(cmd.OutOrStdout(), results)
	return nil
}
