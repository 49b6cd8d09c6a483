package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
)

var openFormat string

var openCmd = &cobra.Command{
	Use:   "open path [path...]",
	Short: "Open paths and print the process table",
	Long: `Boot a desktop, open each argument as a command line and print the
resulting process table and window stack. Directories open in Finder,
text files in Notes and images in Preview.`,
	Example: `  desktop open /Users/joey/Documents/readme.txt
  desktop open "/Applications/Finder.app /Users/joey/Pictures" --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringVarP(&openFormat, "format", "f", "table", "output format (table or json)")
}

type openResult struct {
	Processes []app.ProcessInfo `json:"processes"`
	Windows   []app.Window      `json:"windows"`
}

func runOpen(cmd *cobra.Command, args []string) error {
	if openFormat != "table" && openFormat != "json" {
		return fmt.Errorf("unknown format %q", openFormat)
	}

	d, shutdown, err := boot(cmd)
	if err != nil {
		return err
	}
	defer shutdown()

	var result openResult
	err = d.Do(cmd.Context(), func() error {
		for _, argument := range args {
			if _, err := d.Manager.Open(argument); err != nil {
				return fmt.Errorf("open %s: %w", argument, err)
			}
		}
		result.Processes = d.Manager.ListProcesses()
		result.Windows = d.Compositor.Windows()
		return nil
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if openFormat == "json" {
		data, err := sonic.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PID\tNAME\tPATH\tSTARTED")
	for _, p := range result.Processes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Path, p.StartedAt.Format(time.Kitchen))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "WINDOW\tTITLE\tVIEW\tFOCUSED")
	for _, win := range result.Windows {
		focused := ""
		if win.Focused {
			focused = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", win.ID, win.Title, win.View, focused)
	}
	return w.Flush()
}
