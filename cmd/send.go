package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

var sendFile string

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Validate a lead record and send it through the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sub, err := readSubmission(sendFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := a.leads.Submit(ctx, sub)
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			fmt.Fprintln(cmd.ErrOrStderr(), "invalid lead:")
			printFieldErrors(cmd.ErrOrStderr(), fieldErrs)
			return err
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "sent lead %s via %s (message id %s)\n",
			res.Lead.ID, res.Dispatch.Provider, res.Dispatch.MessageID)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendFile, "file", "f", "-", "JSON lead record (- for stdin)")
}
