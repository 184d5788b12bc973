package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/awantoch/eepromgen/blob"
	"github.com/awantoch/eepromgen/constants"
	"github.com/awantoch/eepromgen/fru"
	"github.com/awantoch/eepromgen/logger"
)

var (
	exit   = os.Exit
	region string
	debug  bool
)

// NewRootCmd creates the 'fru-redact' command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.UseRedact,
		Short: constants.DescRedact,
		Long: constants.UsageRedact + `

Prints every FRU field as "<area> <field> <value>" and writes the redacted
image to FILE.redacted. FILE may be a local path or an s3://bucket/key URL.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.SetMode("debug")
			}
			store := blob.NewDefaultStore(&blob.Config{Region: region})
			for _, ref := range args {
				res, out, err := fru.RedactFile(cmd.Context(), store, ref)
				if err != nil {
					logger.Error(constants.ErrRedactFailed, err)
					exit(1)
					return
				}
				for _, f := range res.Fields {
					logger.User(constants.MsgRedactedField, f.Area, f.Index, f.Value)
				}
				logger.Info(constants.MsgRedactedWrote, out)
			}
		},
	}
	rootCmd.Flags().StringVar(&region, "s3-region", "", "AWS region for s3:// references")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logs")
	return rootCmd
}
