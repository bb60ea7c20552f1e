package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// TagCount is one row of the tags output.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tags",
		Short:         "List every tag in use with its recipe count",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(rootOpts, cmd)
		},
	}
	return cmd
}

func runTags(opts *RootOptions, cmd *cobra.Command) error {
	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	counts := cb.TagCounts()
	rows := []TagCount{}
	for _, tag := range cb.Tags() {
		rows = append(rows, TagCount{Tag: tag, Count: counts[tag]})
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out.Writer, "No tags.")
		return nil
	}
	tw := tabwriter.NewWriter(out.Writer, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", row.Tag, row.Count)
	}
	return tw.Flush()
}
