package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/sidemenu/internal/config"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func (c *cli) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show committed menu transitions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeDB, err := c.openSession()
			if err != nil {
				return err
			}
			defer closeDB()

			rows, err := session.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "no transitions recorded")
				return nil
			}
			t := newTable("AT", "STATE", "SOURCE", "DESTINATION")
			for _, r := range rows {
				dest := ""
				if r.Destination != nil {
					dest = *r.Destination
				}
				t.Row(r.At.Local().Format("2006-01-02 15:04:05"), r.State, r.Source, dest)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of transitions to show")
	return cmd
}

func (c *cli) itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage menu items",
	}

	var replace bool
	importCmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Upsert menu items from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			session, closeDB, err := c.openSession()
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := session.ImportItems(cmd.Context(), f, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items\n", n)
			return nil
		},
	}
	importCmd.Flags().BoolVar(&replace, "replace", false, "remove existing items first")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List menu items in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeDB, err := c.openSession()
			if err != nil {
				return err
			}
			defer closeDB()

			items, err := session.Items(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable("#", "ICON", "TITLE", "DESTINATION")
			for i, it := range items {
				t.Row(strconv.Itoa(i), it.Icon, it.Title, it.Destination)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print menu items as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeDB, err := c.openSession()
			if err != nil {
				return err
			}
			defer closeDB()
			return session.ExportItems(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(importCmd, listCmd, exportCmd)
	return cmd
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.Save(c.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
