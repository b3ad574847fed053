// Package shell is the interactive navigator shell: console table
// rendering, the option prompt loop, screen clearing and keystroke
// waiting. None of it is part of the FAT12 core; it is a thin layer over
// fat12.Filesystem, kept deliberately simple in the style of the original
// tool's console menu.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/sscafiti/fat12nav/internal/fat12"
	"github.com/sscafiti/fat12nav/internal/logger"
)

// Run reads path, and on success enters the interactive loop on in/out. On
// BadBootSector or FailedToOpen it prints the corresponding diagnostic and
// returns nil (the original tool exits 0 in both cases). blockSizeHint
// overrides the sector size assumed before the boot sector is parsed; 0
// leaves the default in place.
func Run(path string, in io.Reader, out io.Writer, log *logger.Logger, blockSizeHint uint32) error {
	fsys := fat12.New(log)
	fsys.SetBlockSizeHint(blockSizeHint)

	if err := fsys.Init(path); err != nil {
		switch {
		case errors.Is(err, fat12.ErrBadBootSector):
			fmt.Fprintln(out, "\n\n\t\tDISK HAS BAD BOOT SECTOR!")
			return nil
		case errors.Is(err, fat12.ErrFailedToOpen):
			fmt.Fprintln(out, "\n\n\t\tFAILED TO OPEN DISK!")
			return nil
		default:
			return err
		}
	}
	defer fsys.Deinit()

	return newSession(fsys, in, out, log).loop()
}

type session struct {
	fsys    *fat12.Filesystem
	reader  *bufio.Reader
	out     io.Writer
	log     *logger.Logger
	cluster uint16
	listing []fat12.DirectoryEntry
}

func newSession(fsys *fat12.Filesystem, in io.Reader, out io.Writer, log *logger.Logger) *session {
	return &session{
		fsys:   fsys,
		reader: bufio.NewReader(in),
		out:    out,
		log:    log,
	}
}

func (s *session) loop() error {
	if err := s.enter(fat12.RootDirCluster); err != nil {
		return err
	}

	for {
		choice, err := s.prompt()
		if err != nil {
			return err
		}

		if choice == 0 {
			return nil
		}
		idx := choice - 1
		if idx < 0 || idx >= len(s.listing) {
			fmt.Fprintln(s.out, "\n\n\tPlease re-enter your option or press 0 to exit!")
			continue
		}

		entry := s.listing[idx]
		if entry.IsDirectory() {
			clearScreen()
			if err := s.enter(entry.FirstCluster); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintln(s.out, "\n\n=>> [Read file ... ]")
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, "File: ")
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out)

		if err := s.printFile(entry); err != nil {
			return err
		}

		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, "\n\nPress any key to continue...")
		waitForKeypress(s.reader)

		clearScreen()
		s.render()
	}
}

func (s *session) enter(cluster uint16) error {
	listing, err := s.fsys.ReadDir(cluster)
	if err != nil {
		return err
	}
	s.cluster = cluster
	s.listing = listing
	s.render()
	return nil
}

func (s *session) printFile(entry fat12.DirectoryEntry) error {
	remaining := int64(entry.Size)
	return s.fsys.ReadFile(entry.FirstCluster, func(buf []byte) error {
		n := len(buf)
		if remaining >= 0 && int64(n) > remaining {
			n = int(remaining)
		}
		if n > 0 {
			if _, err := s.out.Write(buf[:n]); err != nil {
				return err
			}
		}
		remaining -= int64(len(buf))
		return nil
	})
}

func (s *session) prompt() (int, error) {
	for {
		fmt.Fprint(s.out, "\n\n[OPTION] >> ")
		line, err := s.reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 0 {
			fmt.Fprintln(s.out, "\n\n\tPlease re-enter your option or press 0 to exit!")
			continue
		}
		return n, nil
	}
}

func (s *session) render() {
	RenderListing(s.out, s.listing)
}

// RenderListing prints the directory table: {Option#, Name, Type, Size}.
func RenderListing(out io.Writer, listing []fat12.DirectoryEntry) {
	fmt.Fprintln(out, "\n+-----------+-------------------------------------------------------+")
	fmt.Fprintln(out, "|  MY DISK  | Select the options below to access or press 0 to exit |")
	fmt.Fprintln(out, "+-----------+-------------------------------------------------------+")
	fmt.Fprintln(out, "|  Option   |         Name          |    Type     |       size      |")
	fmt.Fprintln(out, "+-----------+-------------------------------------------------------+")

	for i, e := range listing {
		name := e.DisplayName()
		if e.IsDirectory() {
			fmt.Fprintf(out, "|  %4d     |%-12s            |%-6s       |         #       |\n", i+1, name, "Folder")
		} else {
			fmt.Fprintf(out, "|  %4d     |%-12s            |%-6s       | %8d Bytes  |\n", i+1, name, "File", e.Size)
		}
	}
	fmt.Fprintln(out, "+-----------+-------------------------------------------------------+")
}

// clearScreen shells out to the platform's clear command, mirroring the
// original tool's system("cls") call. Best-effort: a failure here is not
// worth aborting the session over.
func clearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	_ = cmd.Run()
}

// waitForKeypress reads and discards a single byte, pausing the shell the
// way the original tool's getch() does.
func waitForKeypress(r *bufio.Reader) {
	_, _ = r.ReadByte()
}

