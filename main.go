package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/mipsasm/mipsasm/pkg/asm"
	"github.com/mipsasm/mipsasm/pkg/cpu"
	"github.com/mipsasm/mipsasm/pkg/isa"
	"github.com/mipsasm/mipsasm/pkg/operand"
)

func main() {
	inPath := flag.String("in", "", "input assembly file path")
	outPath := flag.String("out", "", "output object file path (default: input with .out extension)")
	baseFlag := flag.String("base", "0", "address of the first instruction")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	disPath := flag.String("dis", "", "disassemble an object file or hex word list")
	runProgram := flag.Bool("run", false, "execute the assembled program and print the registers")
	maxSteps := flag.Int("steps", 1_000_000, "instruction limit for -run")
	flag.Parse()

	logger, err := newLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(2)
	}

	base, err := operand.Parser{}.ParseImmediate(*baseFlag, 32, false)
	if err != nil || base%4 != 0 {
		fmt.Fprintf(os.Stderr, "invalid -base %q: must be a word aligned 32-bit address\n", *baseFlag)
		atexit.Exit(2)
	}

	if *inPath == "" && *disPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to assemble or -dis <file> to disassemble")
		flag.Usage()
		atexit.Exit(2)
	}

	if *disPath != "" {
		if err := disassembleFile(os.Stdout, *disPath, uint32(base)); err != nil {
			logger.Error("disassembly failed", "path", *disPath, "err", err)
			atexit.Exit(1)
		}
	}

	if *inPath == "" {
		atexit.Exit(0)
	}

	source, err := os.ReadFile(*inPath)
	if err != nil {
		logger.Error("failed to read input file", "path", *inPath, "err", err)
		atexit.Exit(1)
	}

	obj, err := asm.NewAssembler(asm.WithLogger(logger), asm.WithTextBase(uint32(base))).Assemble(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembly failed:\n%v\n", err)
		atexit.Exit(1)
	}

	output := *outPath
	if output == "" {
		output = defaultOutputPath(*inPath)
	}
	if err := writeObject(output, obj); err != nil {
		logger.Error("failed to write object file", "path", output, "err", err)
		atexit.Exit(1)
	}
	fmt.Printf("assembled %d words, %d symbols, %d relocations -> %s\n",
		len(obj.Text), len(obj.Symbols), len(obj.Relocations), output)

	if *runProgram {
		if err := runObject(os.Stdout, obj, *maxSteps); err != nil {
			logger.Error("run failed", "err", err)
			atexit.Exit(1)
		}
	}

	atexit.Exit(0)
}

// newLogger writes human readable records to a terminal and JSON otherwise.
func newLogger(w *os.File, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if term.IsTerminal(int(w.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".out"
	}
	return strings.TrimSuffix(inPath, ext) + ".out"
}

// writeObject creates path and removes it again if the write fails or the
// process exits before the object is complete.
func writeObject(path string, obj *asm.Object) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	done := false
	atexit.Register(func() {
		if !done {
			os.Remove(path)
		}
	})

	if _, err := obj.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	done = true
	return nil
}

func disassembleFile(w io.Writer, path string, base uint32) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	obj, err := asm.ReadObject(f)
	if err != nil {
		return err
	}

	labels := make(map[uint32]string, len(obj.Symbols))
	for _, s := range obj.Symbols {
		labels[s.Addr] = s.Name
	}

	for i, word := range obj.Text {
		addr := base + uint32(i)*4
		if name, ok := labels[addr]; ok {
			fmt.Fprintf(w, "%s:\n", name)
		}
		text, err := isa.Disassemble(word, addr)
		if err != nil {
			text = fmt.Sprintf(".word 0x%08x", word)
		}
		fmt.Fprintf(w, "%08x: %08x  %s\n", addr, word, text)
	}
	return nil
}

func runObject(w io.Writer, obj *asm.Object, maxSteps int) error {
	if len(obj.Relocations) > 0 {
		return fmt.Errorf("cannot run with %d unresolved references (first: %s)",
			len(obj.Relocations), obj.Relocations[0].Name)
	}

	vm := cpu.NewCPU(obj.Base)
	vm.Load(obj.Text)
	if err := vm.Run(maxSteps); err != nil {
		return err
	}

	fmt.Fprintf(w, "run complete: PC=0x%08x\n", vm.PC)
	for r := uint8(0); r < isa.NumRegisters; r++ {
		fmt.Fprintf(w, "%-5s 0x%08x", isa.RegisterToken(r), vm.Regs[r])
		if r%4 == 3 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "  ")
		}
	}
	return nil
}
