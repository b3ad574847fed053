// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sscafiti/fat12nav/internal/disk"
	"github.com/sscafiti/fat12nav/internal/fat12"
	"github.com/sscafiti/fat12nav/internal/fusefs"
	"github.com/sscafiti/fat12nav/internal/logger"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mount <image> <mountpoint>",
		Short:        "Mount a FAT12 disk image read-only via FUSE",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	cmd.Flags().String("log-level", "ERROR", "log level: DEBUG, INFO, WARN, ERROR")
	addBlockSizeFlag(cmd)

	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	imagePath := disk.NormalizeVolumePath(args[0])
	mountpoint := args[1]

	logLevel, _ := cmd.Flags().GetString("log-level")
	log := logger.New(os.Stderr, logger.ParseLevel(logLevel))

	fsys := fat12.New(log)
	fsys.SetBlockSizeHint(getBlockSizeFlag(cmd))
	if err := fsys.Init(imagePath); err != nil {
		return err
	}
	defer fsys.Deinit()

	return fusefs.Mount(mountpoint, fsys)
}
