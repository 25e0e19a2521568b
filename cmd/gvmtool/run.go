package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gvm64/diag"
	"gvm64/vm"
)

func newRunCmd() *cobra.Command {
	var memSize uint64
	var debug bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "load a flat byte image and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.TraceLevel
			}
			logger := diag.New(os.Stderr, level)

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("gvmtool: %w", err)
			}

			m := vm.NewMachine(memSize, vm.WithLogger(logger))
			if err := m.Flash(image); err != nil {
				return fmt.Errorf("gvmtool: flash: %w", err)
			}

			if debug {
				runDebugShell(m)
			} else if err := m.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "gvmtool: fault at ip=0x%x: %v\n", m.IP(), err)
				os.Exit(int(m.ExitCode()) + 1)
			}

			os.Exit(int(m.ExitCode()))
			return nil
		},
	}

	cmd.Flags().Uint64VarP(&memSize, "mem", "m", 64*1024, "linear memory size in bytes")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "start the interactive single-step shell")
	return cmd
}

// runDebugShell is a small single-step REPL, the direct descendant of
// the teacher's execProgramDebugMode loop, adapted from a flat
// instruction-array program counter to an IP-addressed byte stream and
// Machine's breakpoint set instead of a line-number map.
func runDebugShell(m *vm.Machine) {
	fmt.Println("commands: n/next, r/run, b <addr> (toggle breakpoint), q/quit")
	printState(m)

	reader := bufio.NewReader(os.Stdin)
	waitForInput := true
	for {
		if waitForInput {
			fmt.Print("-> ")
			line, _ := reader.ReadString('\n')
			line = strings.ToLower(strings.TrimSpace(line))

			switch {
			case line == "n" || line == "next":
				if !step(m) {
					return
				}
				printState(m)
			case line == "r" || line == "run":
				waitForInput = false
			case line == "q" || line == "quit":
				return
			case strings.HasPrefix(line, "b"):
				toggleBreakpoint(m, line)
			default:
				fmt.Println("unrecognised command")
			}
			continue
		}

		if m.AtBreakpoint(m.IP()) {
			fmt.Println("breakpoint")
			printState(m)
			waitForInput = true
			continue
		}
		if !step(m) {
			return
		}
	}
}

func step(m *vm.Machine) bool {
	if err := m.Cycle(); err != nil {
		fmt.Printf("fault: %v\n", err)
		return false
	}
	return true
}

func printState(m *vm.Machine) {
	fmt.Printf("-> next> %s\n", m.DisassembleAt(m.IP()))
	fmt.Printf("-> ip=0x%x sp=0x%x fp=0x%x flags=0x%02x\n", m.IP(), m.SP(), m.FP(), m.Flags())
}

func toggleBreakpoint(m *vm.Machine, line string) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		fmt.Println("usage: b <addr>")
		return
	}
	addr, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		fmt.Println("bad address:", err)
		return
	}
	if m.AtBreakpoint(addr) {
		m.ClearBreakpoint(addr)
	} else {
		m.SetBreakpoint(addr)
	}
}
