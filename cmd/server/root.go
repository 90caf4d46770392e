package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "live-server",
		Short:         "Live session signaling relay and support chat streaming server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags())
		},
	}
	cmd.Flags().Int("port", 8080, "HTTP listen port")
	cmd.Flags().String("mode", "release", "gin mode: debug|release|test")
	cmd.Flags().String("config-env", "", "config file suffix, reads config/config.<env>.yaml")
	cmd.Flags().String("log_level", "info", "log level")
	return cmd
}
