package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yara1604/InnovNation-Hackathon/internal/config"
)

func newConfigCommand(st *state) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage markscan configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default configuration as YAML",
		Long: `Write the default configuration to a YAML file (markscan.yaml when no file
is given). An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.GenerateDefaultConfigFile(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return err
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Long: `Print the configuration after merging defaults, the config file, .env,
environment variables and flags. Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.Marshal(config.Redacted(st.cfg))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if used := st.loader.GetConfigFileUsed(); used != "" {
				if _, err := fmt.Fprintf(w, "# config file: %s\n", used); err != nil {
					return err
				}
			}
			if _, err := w.Write(out); err != nil {
				return err
			}
			if err := st.cfg.Validate(); err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}
			return nil
		},
	}

	pathsCmd := &cobra.Command{
		Use:   "paths",
		Short: "List the directories searched for markscan.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range config.GetConfigSearchPaths() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}

	c.AddCommand(initCmd, showCmd, pathsCmd)
	return c
}
