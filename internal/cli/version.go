package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/config"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf(config.MsgVersionOutput,
				config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
		},
	})
}
