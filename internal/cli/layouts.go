package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) layoutsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List available layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			e, err := cfg.Engine()
			if err != nil {
				return err
			}
			current := e.CurrentLayout()
			w := cmd.OutOrStdout()
			for _, name := range e.Layouts() {
				t := e.Template(name)
				mark := " "
				if name == current {
					mark = "*"
				}
				if _, err := fmt.Fprintf(w, "%s %-16s %d zones\n", mark, name, len(t.Zones)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML or TOML)")

	return cmd
}
