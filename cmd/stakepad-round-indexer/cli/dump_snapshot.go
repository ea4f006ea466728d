package cli

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func DumpSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-snapshot <height>",
		Short: "Prints the aggregated round snapshot at a block height without saving it",
		Args:  cobra.ExactArgs(1),
		RunE:  dumpSnapshot,
	}

	return cmd
}

func dumpSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	height, err := parseHeight(args[0])
	if err != nil {
		return err
	}

	o, err := newOneShot(ctx)
	if err != nil {
		return err
	}
	defer o.close()

	trigger, err := o.triggerAt(ctx, height)
	if err != nil {
		return err
	}

	doc, err := o.service.BuildRoundDocument(ctx, trigger)
	if err != nil {
		return err
	}

	spew.Fdump(cmd.OutOrStdout(), doc)
	return nil
}
