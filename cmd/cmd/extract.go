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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sscafiti/fat12nav/internal/disk"
	"github.com/sscafiti/fat12nav/internal/fat12"
	"github.com/sscafiti/fat12nav/internal/logger"
	"github.com/sscafiti/fat12nav/pkg/pbar"
	fatio "github.com/sscafiti/fat12nav/pkg/util/io"
)

func DefineExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "extract <image> <path> <dest>",
		Short:        "Extract a single file out of a FAT12 disk image, addressed by path",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE:         RunExtract,
	}

	cmd.Flags().String("log-level", "ERROR", "log level: DEBUG, INFO, WARN, ERROR")
	addBlockSizeFlag(cmd)

	return cmd
}

func RunExtract(cmd *cobra.Command, args []string) error {
	imagePath := disk.NormalizeVolumePath(args[0])
	innerPath := args[1]
	destPath := args[2]

	logLevel, _ := cmd.Flags().GetString("log-level")
	log := logger.New(os.Stderr, logger.ParseLevel(logLevel))

	fsys := fat12.New(log)
	fsys.SetBlockSizeHint(getBlockSizeFlag(cmd))
	if err := fsys.Init(imagePath); err != nil {
		return err
	}
	defer fsys.Deinit()

	entry, err := fat12.ResolvePath(fsys, innerPath)
	if err != nil {
		return err
	}
	if entry.IsDirectory() {
		return fmt.Errorf("extract: %q is a directory", innerPath)
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(fsys.ReadFile(entry.FirstCluster, func(buf []byte) error {
			_, err := pw.Write(buf)
			return err
		}))
	}()

	bar := pbar.NewProgressBarState(int64(entry.Size))
	src := &progressReader{r: io.LimitReader(pr, int64(entry.Size)), bar: bar}

	if err := fatio.CopyFile(destPath, src); err != nil {
		return fmt.Errorf("failed to extract %q to %q: %w", innerPath, destPath, err)
	}
	bar.Render(true)
	bar.Finish()

	return nil
}

// progressReader wraps a reader, feeding bytes read into a pbar.ProgressBarState
// so fatio.CopyFile's internal io.Copy loop still drives the extract progress bar.
type progressReader struct {
	r   io.Reader
	bar *pbar.ProgressBarState
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.bar.ProcessedBytes += int64(n)
	p.bar.Render(false)
	return n, err
}
