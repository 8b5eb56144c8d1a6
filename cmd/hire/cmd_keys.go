package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/willibrandon/hire/internal/app"
	"github.com/willibrandon/hire/internal/command"
)

// insertKeys are handled by insert mode itself and cannot be rebound
var insertKeys = [][2]string{
	{"esc", "back to normal mode"},
	{"enter", "split the line"},
	{"tab", "indent (options.tab_indent, options.tab_width)"},
	{"backspace", "delete before the cursor, joining lines at column 0"},
}

// newKeysCmd creates the keys subcommand
func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the active key bindings",
		Long: `List the key bindings in effect: the normal mode keymap after applying
config.yaml, the fixed insert mode keys, and the keys the terminal host
handles in every mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderKeys(table, app.DefaultKeyMap()))
			return nil
		},
	}
}

// renderKeys draws the bindings as a tree
func renderKeys(table *command.Table, host app.KeyMap) string {
	tree := treeprint.NewWithRoot("hire keys")

	normal := tree.AddBranch(fmt.Sprintf("normal mode (%d)", table.Len()))
	for _, b := range table.Bindings() {
		normal.AddNode(fmt.Sprintf("%-9s %s", b.Key, b.Op))
	}

	insert := tree.AddBranch("insert mode")
	for _, k := range insertKeys {
		insert.AddNode(fmt.Sprintf("%-9s %s", k[0], k[1]))
	}

	always := tree.AddBranch("any mode")
	for _, b := range host.ShortHelp() {
		h := b.Help()
		always.AddNode(fmt.Sprintf("%-9s %s", h.Key, h.Desc))
	}

	return tree.String()
}
