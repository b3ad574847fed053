package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sscafiti/fat12nav/pkg/util/format"
)

// addBlockSizeFlag registers the --block-size flag shared by nav, extract,
// and mount, used to override the sector size BlockDevice assumes before
// the boot sector is parsed.
func addBlockSizeFlag(cmd *cobra.Command) {
	cmd.Flags().String("block-size", "", "override the assumed sector size (e.g. 512, 4KB) when probing a non-standard image")
}

// getBlockSizeFlag parses --block-size, returning 0 (no override) on an
// unset or unparseable value.
func getBlockSizeFlag(cmd *cobra.Command) uint32 {
	s, _ := cmd.Flags().GetString("block-size")
	v, err := format.ParseBytes(s)
	if err != nil {
		return 0
	}
	return uint32(v)
}
