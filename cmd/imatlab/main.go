// Command imatlab evaluates number theory commands such as "factorizar(360)".
//
// Without arguments it starts an interactive console. With one argument it
// runs the commands of that file and writes the results to <base>Output.txt.
// With two arguments the second one names the output file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/imat-lab/imatlab/command"
)

var flagVerbose = flag.Bool("v", false, "log every failed command to stderr.")

func main() {

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] [input [output]]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	switch flag.NArg() {
	case 0:
		err = repl(logger, os.Stdin, os.Stdout)
	case 1:
		err = batch(logger, flag.Arg(0), OutputPath(flag.Arg(0)))
	case 2:
		err = batch(logger, flag.Arg(0), flag.Arg(1))
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("imatlab failed", "err", err)
		os.Exit(1)
	}
}

// OutputPath returns the default output file of a batch input: the input name
// up to its first dot followed by "Output.txt".
func OutputPath(input string) string {
	dir, file := filepath.Split(input)
	if i := strings.IndexByte(file, '.'); i >= 0 {
		file = file[:i]
	}
	return filepath.Join(dir, file+"Output.txt")
}

func batch(logger *slog.Logger, input, output string) (err error) {

	fin, err := os.Open(input)
	if err != nil {
		return err
	}
	defer fin.Close()

	fout, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fout.Close(); err == nil {
			err = cerr
		}
	}()

	it := command.Interpreter{
		OnError: func(lineno int, line string, err error) {
			logger.Debug("command failed", "file", input, "line", lineno, "command", line, "err", err)
		},
	}

	if err = it.Run(fin, fout); err != nil {
		return err
	}

	logger.Info("batch done", "input", input, "output", output)

	return nil
}

// InvalidCommand is printed by the console for any line that fails.
const InvalidCommand = "Error: Invalid command"

func repl(logger *slog.Logger, r io.Reader, w io.Writer) error {

	fmt.Fprintln(w, "IMAT-LAB. Commands:")
	help(w)
	fmt.Fprintln(w, "    - exit     - help     - clear")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, ">>> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}

		switch line := strings.TrimSpace(scanner.Text()); line {
		case "":
		case "exit":
			return nil
		case "help":
			help(w)
		case "clear":
			fmt.Fprint(w, "\033[H\033[2J")
		default:
			result, err := command.Execute(line)
			if err != nil {
				logger.Debug("command failed", "command", line, "err", err)
				fmt.Fprintln(w, InvalidCommand)
				continue
			}
			fmt.Fprintln(w, result)
		}
	}
}

func help(w io.Writer) {
	for _, c := range command.Commands() {
		fmt.Fprintf(w, "    - %s(%s)\n", c, signature(c))
	}
}

func signature(c command.Command) string {
	switch c {
	case command.SolveSystem:
		return "[a1,b1,p1;a2,b2,p2;...]"
	case command.ListPrimes:
		return "start, end"
	case command.ModPow:
		return "a, b, p"
	case command.QuadraticEquation:
		return "a, b, c, p"
	}
	return strings.Join([]string{"a", "b", "c", "d"}[:c.Arity()], ", ")
}
