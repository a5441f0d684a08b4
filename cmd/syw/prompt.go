package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/showyourwork/internal/prompt"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the show-your-work agent command template",
		Args:  cobra.NoArgs,
		// The template needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), prompt.Template())
			return err
		},
	}
}

func newInstallCommandCmd(a *app) *cobra.Command {
	var (
		root  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "install-command",
		Short: "Install the agent command into a project",
		Long: `Write the show-your-work command template to
.claude/commands/show-your-work.md under --root (default: the working
directory).

Examples:
  syw install-command
  syw install-command --root ~/src/app --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if root == "" {
				root = a.dir()
			}
			path, err := prompt.Install(root, force)
			if errors.Is(err, prompt.ErrExists) {
				return fmt.Errorf("%w: use --force to overwrite", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "project root (default: working directory)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing command file")
	return cmd
}
