package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/behzade/storefront/internal/adapter/source"
)

func newRoutesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the API endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router := newRouter(a.cfg, source.NewSeed(), a.logger)

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("METHOD", "PATH", "REQUEST", "RESPONSE")
			for _, d := range router.Describe() {
				t.Row(d.Method, d.Path, d.Req.String, d.Res.String)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
