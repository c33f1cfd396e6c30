package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"submatch/internal/fingerprint"
	"submatch/internal/srt"
)

// newFingerprintCommand is a debugging aid: it prints the sentence digests of
// one subtitle file so two files can be diffed by content identity.
func newFingerprintCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <subtitle.srt>",
		Short: "Print the sentence fingerprints of a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cues, err := srt.ParseFile(args[0])
			if err != nil {
				return err
			}
			normalizer, err := fingerprint.NewNormalizer()
			if err != nil {
				return err
			}
			set, err := normalizer.Fingerprint(cues)
			if err != nil {
				return err
			}

			digests := make([]string, 0, set.Len())
			for digest := range set {
				digests = append(digests, digest)
			}
			sort.Strings(digests)
			for _, digest := range digests {
				fmt.Fprintln(cmd.OutOrStdout(), digest)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d cues, %d distinct sentences\n", len(cues), set.Len())
			return nil
		},
	}
}
