package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

var previewFile string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Validate a lead record and print the WhatsApp message without sending it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sub, err := readSubmission(previewFile)
		if err != nil {
			return err
		}

		_, text, err := a.leads.Preview(sub)
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			fmt.Fprintln(cmd.ErrOrStderr(), "invalid lead:")
			printFieldErrors(cmd.ErrOrStderr(), fieldErrs)
			return err
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewFile, "file", "f", "-", "JSON lead record (- for stdin)")
}
