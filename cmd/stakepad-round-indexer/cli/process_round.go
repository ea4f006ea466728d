package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func ProcessRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process-round <height>",
		Short: "Materializes the round running at a block height as the current round",
		Args:  cobra.ExactArgs(1),
		RunE:  processRound,
	}

	return cmd
}

func processRound(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Queue.ProcessingTimeout)
	defer cancel()

	if err := o.service.ProcessRound(ctx, trigger); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Uint32("round", trigger.Round).
		Uint64("height", height).
		Msg("round processed")
	return nil
}
