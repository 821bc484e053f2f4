// File: cmd/layers.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkeller0x/layerforge-cli/internal/registry"
)

// newLayersCmd lists the registered layers in execution order.
func newLayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "Lists the available transformation layers in execution order",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range registry.Descriptors() {
				fmt.Printf("%d  %-14s %s\n", d.ID, d.Name, d.Description)
			}
			return nil
		},
	}
}
