package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/mathflow/internal/selfupdate"
	"github.com/spf13/cobra"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update mathflow to the latest release",
	Long: "Download the mathflow release for this platform, verify its checksum and replace the running binary.\n" +
		"Lessons and the LLM request log are kept; only the binary changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("version")
		allowDowngrade, _ := cmd.Flags().GetBool("allow-downgrade")

		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		return runUpdate(ctx, cmd, checker, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
			AllowDowngrade: allowDowngrade,
		})
	},
}

func runUpdate(ctx context.Context, cmd *cobra.Command, checker *selfupdate.Checker, input *selfupdate.UpdateInput) error {
	out := cmd.OutOrStdout()
	err := checker.Update(ctx, input, func(p selfupdate.UpdateProgress) {
		fmt.Fprintln(out, p.Message)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintf(out, "Cannot update a development build (%s). Install a release build first.\n", input.CurrentVersion)
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintf(out, "Already running %s.\n", input.CurrentVersion)
		return nil
	case errors.Is(err, selfupdate.ErrDowngrade):
		return fmt.Errorf("%w\n\nPass --allow-downgrade to install an older release", err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nTry running: sudo mathflow update", err)
	}
	return err
}

func init() {
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest (e.g. v1.2.0)")
	updateCmd.Flags().Bool("allow-downgrade", false, "Allow --version to name an older release")
}
