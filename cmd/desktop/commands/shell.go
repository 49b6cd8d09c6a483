package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive terminal session",
	Long: `Boot a desktop and attach an interactive shell to it. Commands run
against the virtual file system and the process table; type "help" for the
list of programs and "exit" to leave.`,
	Example: `  desktop shell
  echo "ls /Applications" | desktop shell`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	d, shutdown, err := boot(cmd)
	if err != nil {
		return err
	}
	defer shutdown()

	out := cmd.OutOrStdout()
	sh := d.Shell(out)
	ctx := cmd.Context()

	var prompt string
	refresh := func() error {
		return d.Do(ctx, func() error {
			prompt = sh.Prompt()
			return nil
		})
	}
	if err := d.Do(ctx, func() error {
		sh.Execute("motd")
		return nil
	}); err != nil {
		return err
	}
	if err := refresh(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "exit" {
			return nil
		}
		if err := d.Do(ctx, func() error {
			sh.Execute(line)
			prompt = sh.Prompt()
			return nil
		}); err != nil {
			return err
		}
	}
}
