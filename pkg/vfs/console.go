package vfs

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"treedict/pkg/errs"
)

// ErrExit is returned by Execute when the user asks to leave the shell.
var ErrExit = errors.New("exit")

// Console dispatches shell commands onto a VFS.
type Console struct {
	vfs *VFS
	out io.Writer

	prompt *color.Color
	fail   *color.Color
}

func NewConsole(v *VFS, out io.Writer) *Console {
	return &Console{
		vfs:    v,
		out:    out,
		prompt: color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed),
	}
}

// Execute runs a single shell command line.
func (c *Console) Execute(input string) error {
	fields := strings.Fields(input)
	switch len(fields) {
	case 0:
		return nil
	case 1:
		switch fields[0] {
		case "help", "h":
			c.Manual()
			return nil
		case "exit":
			return ErrExit
		case "ls":
			for _, name := range c.vfs.List() {
				fmt.Fprintln(c.out, name)
			}
			return nil
		default:
			return c.vfs.Open(fields[0])
		}
	case 2:
		switch fields[0] {
		case "cd":
			return c.vfs.Cd(fields[1])
		case "mkdir":
			return c.vfs.Mkdir(fields[1])
		case "touch":
			return c.vfs.Touch(fields[1])
		case "rmdir":
			return c.vfs.Rmdir(fields[1])
		case "rm", "remove":
			return c.vfs.Remove(fields[1])
		}
	case 3:
		switch fields[0] {
		case "mv", "move":
			return c.vfs.Move(fields[1], fields[2])
		case "attach":
			return c.vfs.Attach(fields[1], fields[2])
		}
	}
	return fmt.Errorf("%w: %s", errs.ErrInvalidInput, input)
}

// ShowError prints err in the console's error style.
func (c *Console) ShowError(err error) {
	c.fail.Fprintf(c.out, "%v\n", err)
}

// ShowPrompt prints the current directory and the input marker.
func (c *Console) ShowPrompt() {
	fmt.Fprintf(c.out, "%s ", c.vfs.Cwd())
	c.prompt.Fprint(c.out, "? ")
}

func (c *Console) Manual() {
	fmt.Fprint(c.out, `VFS Commands:
  cd <path>              - Change directory
  ls                     - List current directory
  mkdir <path>           - Create directory
  touch <path>           - Create empty file
  attach <vpath> <ppath> - Attach physical file to virtual path
  rmdir <path>           - Remove directory
  rm/remove <path>       - Remove file
  mv/move <from> <to>    - Move file/directory
  <path>                 - Open file/directory
  help/h                 - Show this manual
  exit                   - Exit application
`)
}
