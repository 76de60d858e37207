package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/makjak/blockly-lua/pkg/program"
)

// StoreCmd groups the program database commands.
func StoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save, list and generate stored programs",
	}
	cmd.AddCommand(storeSaveCmd(a))
	cmd.AddCommand(storeListCmd(a))
	cmd.AddCommand(storeShowCmd(a))
	cmd.AddCommand(storeGenerateCmd(a))
	cmd.AddCommand(storeDeleteCmd(a))
	return cmd
}

func storeSaveCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [program.yaml]",
		Short: "Store a program document and print its id",
		Long: `Validate a program document against the registered blocks and store it.

Examples:
  blockly-lua store save miner.yaml --name miner`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := program.Parse(input)
			if err != nil {
				return err
			}
			r, err := a.registry()
			if err != nil {
				return err
			}
			// Normalize through a workspace so only loadable programs are stored.
			ws, err := program.Load(r, doc)
			if err != nil {
				return err
			}
			saved := program.Save(ws)
			if name == "" {
				name = doc.Name
			}
			saved.Name = name

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			p, err := s.Create(name, saved)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "program name (defaults to the document's name)")
	return cmd
}

func storeListCmd(a *app) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.List()
			if err != nil {
				return err
			}
			var only map[string]bool
			if block != "" {
				ids, err := s.FindByBlockType(block)
				if err != nil {
					return err
				}
				only = make(map[string]bool, len(ids))
				for _, id := range ids {
					only[id] = true
				}
			}

			out := cmd.OutOrStdout()
			for _, p := range list {
				if only != nil && !only[p.ID] {
					continue
				}
				name := p.Name
				if name == "" {
					name = color.New(color.FgYellow).Sprint("(unnamed)")
				}
				fmt.Fprintf(out, "%s  %-20s %s\n", p.ID, name, p.UpdatedAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&block, "block", "", "only programs using this block type")
	return cmd
}

func storeShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored program document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := program.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.Load(args[0])
			if err != nil {
				return err
			}
			data, err := program.Encode(p.Document, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func storeGenerateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "generate <id>",
		Short: "Generate Lua from a stored program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.Load(args[0])
			if err != nil {
				return err
			}
			r, err := a.registry()
			if err != nil {
				return err
			}
			return emit(cmd, r, p.Document, strict, false)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any block cannot be generated")
	return cmd
}

func storeDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(args[0])
		},
	}
}
