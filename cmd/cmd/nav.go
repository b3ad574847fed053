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
	"github.com/sscafiti/fat12nav/internal/logger"
	"github.com/sscafiti/fat12nav/internal/shell"
)

const defaultImagePath = "floppy.img"

func DefineNavCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "nav [image]",
		Short:        "Open an interactive shell over a FAT12 disk image",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         RunNav,
	}

	cmd.Flags().String("log-level", "ERROR", "log level: DEBUG, INFO, WARN, ERROR")
	addBlockSizeFlag(cmd)

	return cmd
}

func RunNav(cmd *cobra.Command, args []string) error {
	path := defaultImagePath
	if len(args) > 0 {
		path = args[0]
	}
	path = disk.NormalizeVolumePath(path)

	logLevel, _ := cmd.Flags().GetString("log-level")
	log := logger.New(os.Stderr, logger.ParseLevel(logLevel))

	return shell.Run(path, os.Stdin, os.Stdout, log, getBlockSizeFlag(cmd))
}
