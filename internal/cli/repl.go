package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/seqcalc/internal/service"
	"github.com/agbru/seqcalc/internal/ui"
	"github.com/agbru/seqcalc/pkg/sequence"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Family is the family the session starts on.
	Family string
	// Params are the progression parameters; Params.Index is the starting
	// position.
	Params sequence.Params
	// Timeout bounds each listing.
	Timeout time.Duration
	// MaxIndex is the furthest position the cursor may be moved to.
	MaxIndex uint64
}

// REPL is an interactive session driving one sequence cursor.
type REPL struct {
	config REPLConfig
	svc    service.Service
	cursor sequence.Stepper
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a session on config.Family.
//
// Parameters:
//   - svc: The service cursors and listings are obtained from.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
//   - error: An error if the initial cursor cannot be created.
func NewREPL(svc service.Service, config REPLConfig) (*REPL, error) {
	cursor, err := svc.NewCursor(config.Family, config.Params)
	if err != nil {
		return nil, err
	}
	return &REPL{
		config: config,
		svc:    svc,
		cursor: cursor,
		in:     os.Stdin,
		out:    os.Stdout,
	}, nil
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes commands until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.Paint(ui.ColorSuccess(), r.cursor.Family()+"> "))

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			continue
		}
		eof := errors.Is(err, io.EOF)

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%sSequence Calculator - Interactive Mode%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s======================================%s\n\n", ui.ColorMuted(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	cmd := func(name, desc string) {
		fmt.Fprintf(r.out, "  %s%-14s%s - %s\n", ui.ColorWarning(), name, ui.ColorReset(), desc)
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	cmd("cur", "Show the current term")
	cmd("next", "Advance one position")
	cmd("prev", "Step back one position (no-op at index 0)")
	cmd("fwd <n>", "Advance n positions")
	cmd("back <n>", "Step back n positions, stopping at index 0")
	cmd("move <d>", "Move by a signed offset")
	cmd("goto <i>", "Jump to index i")
	cmd("reset", "Return to index 0")
	cmd("terms <n>", "List n terms from the current index")
	cmd("family <name>", "Switch family ("+strings.Join(r.svc.Families(), ", ")+")")
	cmd("list", "List available families")
	cmd("help", "Display this help")
	cmd("exit", "Exit interactive mode")
}

// processCommand executes one command line and reports whether the session
// continues.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "cur", "c":
		r.printCurrent()
	case "next", "n":
		r.navigate(1, r.cursor.Next)
	case "prev", "p":
		r.cursor.Previous()
		r.printCurrent()
	case "fwd", "f":
		if n, ok := r.uintArg(cmd, args); ok {
			r.navigate(n, func() { r.cursor.Forward(n) })
		}
	case "back", "b":
		if n, ok := r.uintArg(cmd, args); ok {
			r.cursor.Back(n)
			r.printCurrent()
		}
	case "move", "m":
		r.cmdMove(args)
	case "goto", "g":
		if i, ok := r.uintArg(cmd, args); ok {
			r.jump(i)
		}
	case "reset", "r":
		r.cursor.Reset()
		r.printCurrent()
	case "terms", "t":
		r.cmdTerms(args)
	case "family":
		r.cmdFamily(args)
	case "list", "ls":
		r.cmdList()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		// A bare number is a goto.
		if i, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.jump(i)
			return true
		}
		r.errorf("Unknown command: %s", cmd)
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
	}
	return true
}

func (r *REPL) errorf(format string, a ...any) {
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorError(), fmt.Sprintf(format, a...), ui.ColorReset())
}

func (r *REPL) uintArg(cmd string, args []string) (uint64, bool) {
	if len(args) == 0 {
		r.errorf("Usage: %s <n>", cmd)
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		r.errorf("Invalid value: %s", args[0])
		return 0, false
	}
	return n, true
}

// allowed reports whether the cursor may advance by offset without passing
// MaxIndex.
func (r *REPL) allowed(offset uint64) bool {
	idx := r.cursor.Index()
	if offset > r.config.MaxIndex || idx > r.config.MaxIndex-offset {
		r.errorf("Index limit is %d", r.config.MaxIndex)
		return false
	}
	return true
}

func (r *REPL) navigate(offset uint64, op func()) {
	if r.allowed(offset) {
		op()
		r.printCurrent()
	}
}

func (r *REPL) jump(target uint64) {
	if target > r.config.MaxIndex {
		r.errorf("Index limit is %d", r.config.MaxIndex)
		return
	}
	r.cursor.GoTo(target)
	r.printCurrent()
}

func (r *REPL) cmdMove(args []string) {
	if len(args) == 0 {
		r.errorf("Usage: move <d>")
		return
	}
	d, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		r.errorf("Invalid value: %s", args[0])
		return
	}
	if d > 0 && !r.allowed(uint64(d)) {
		return
	}
	r.cursor.Move(d)
	r.printCurrent()
}

func (r *REPL) cmdTerms(args []string) {
	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			r.errorf("Invalid value: %s", args[0])
			return
		}
		count = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	p := r.config.Params
	p.Index = r.cursor.Index()
	res, err := r.svc.Sequence(ctx, service.SequenceRequest{Family: r.cursor.Family(), Params: p, Count: count})
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	_ = DisplaySequence(r.out, res, OutputConfig{})
}

func (r *REPL) cmdFamily(args []string) {
	if len(args) == 0 {
		r.errorf("Usage: family <name>")
		fmt.Fprintf(r.out, "Available families: %s\n", strings.Join(r.svc.Families(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	p := r.config.Params
	p.Index = 0
	cursor, err := r.svc.NewCursor(name, p)
	if err != nil {
		r.errorf("Error: %v", err)
		fmt.Fprintf(r.out, "Available families: %s\n", strings.Join(r.svc.Families(), ", "))
		return
	}
	r.cursor = cursor
	fmt.Fprintf(r.out, "Family changed to: %s\n", ui.Paint(ui.ColorFamily(), name))
	r.printCurrent()
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable families:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.svc.Families() {
		marker := "  "
		if name == r.cursor.Family() {
			marker = ui.Paint(ui.ColorSuccess(), "> ")
		}
		fmt.Fprintf(r.out, "%s%s\n", marker, ui.Paint(ui.ColorFamily(), name))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printCurrent() {
	fmt.Fprintf(r.out, "%s[%s%d%s] = %s%s%s\n",
		ui.Paint(ui.ColorFamily(), r.cursor.Family()),
		ui.ColorIndex(), r.cursor.Index(), ui.ColorReset(),
		ui.ColorValue(), r.cursor.Format(), ui.ColorReset())
}
