// Command cryptochat exchanges RSA encrypted messages through files.
//
// The contact book is read from the path given by -book, by the
// IMATLAB_CONTACTS environment variable (a .env file in the working directory
// is honored) or, failing both, from contactos.json. A message for <name> is
// written to <name>.txt, and "read" opens the file named after the owner of
// the book.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/imat-lab/imatlab/chat"
	"github.com/imat-lab/imatlab/rsa"
	"github.com/imat-lab/imatlab/utils/bignum"
	"github.com/joho/godotenv"
)

// EnvContacts names the environment variable holding the path of the contact book.
const EnvContacts = "IMATLAB_CONTACTS"

var (
	flagBook    = flag.String("book", "", "path of the contact book (default $"+EnvContacts+" or "+chat.DefaultBookPath+").")
	flagVerbose = flag.Bool("v", false, "enable debug logging.")
)

var errUsage = errors.New("invalid usage")

const usage = `usage: %s [-book path] [-v] <command> [arguments]

commands:
  whoami                                 show the owner, padding and contacts
  register -name N -n n -e e -d d        set the owner and their keys
  keygen   -min a -max b                 generate a key pair from primes in [a, b)
  contact  -name N -n n -e e             add or replace a contact
  padding  <digits>                      set the padding of outgoing messages
  send     -to N [message]               encrypt message (or stdin) to <N>.txt
  read     [-file path]                  decrypt the messages addressed to the owner
`

func main() {

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("cannot load .env", "err", err)
	}

	path := bookPath(*flagBook)
	logger.Debug("contact book", "path", path)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	app := &App{BookPath: path, Out: os.Stdout, In: os.Stdin, Logger: logger}

	if err := app.Run(flag.Arg(0), flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logger.Error("cryptochat failed", "command", flag.Arg(0), "err", err)
		os.Exit(1)
	}
}

// bookPath resolves the path of the contact book.
func bookPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvContacts); env != "" {
		return env
	}
	return chat.DefaultBookPath
}

// App runs the subcommands against a contact book stored at BookPath.
type App struct {
	BookPath string
	// Dir is the directory of the message files, the working directory if empty.
	Dir    string
	Out    io.Writer
	In     io.Reader
	Logger *slog.Logger
}

// Run executes the subcommand name with its arguments. Subcommands that
// modify the book save it before returning.
func (app *App) Run(name string, args []string) (err error) {

	book, err := chat.LoadBook(app.BookPath)
	if err != nil {
		return err
	}

	var modified bool
	switch name {
	case "whoami":
		app.whoami(book)
	case "register":
		modified, err = app.register(book, args)
	case "keygen":
		modified, err = app.keygen(book, args)
	case "contact":
		modified, err = app.contact(book, args)
	case "padding":
		modified, err = app.padding(book, args)
	case "send":
		err = app.send(book, args)
	case "read":
		err = app.read(book, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	if err != nil || !modified {
		return err
	}

	if err = book.Save(app.BookPath); err != nil {
		return err
	}

	app.Logger.Debug("contact book saved", "path", app.BookPath)

	return nil
}

func (app *App) whoami(book *chat.Book) {
	self := book.Self
	fmt.Fprintf(app.Out, "######## %s ########\n", self.Name)
	fmt.Fprintf(app.Out, "n = %v\ne = %v\np = %d\n", self.N, self.E, book.Padding)
	if self.HasKeys() {
		fmt.Fprintf(app.Out, "fingerprint = %s\n", self.Fingerprint())
	}
	if len(book.Contacts) == 0 {
		fmt.Fprintln(app.Out, "No contacts")
		return
	}
	fmt.Fprintln(app.Out, "Contacts")
	for i, c := range book.Contacts {
		fmt.Fprintf(app.Out, "%d. %s (n = %v, e = %v) %s\n", i+1, c.Name, c.N, c.E, c.Fingerprint())
	}
}

// bigIntFlag is a flag.Value holding an arbitrary precision integer.
type bigIntFlag struct {
	v *big.Int
}

func (f *bigIntFlag) String() string {
	if f.v == nil {
		return ""
	}
	return f.v.String()
}

func (f *bigIntFlag) Set(s string) (err error) {
	f.v, err = bignum.ParseInt(s)
	return
}

func (app *App) register(book *chat.Book, args []string) (bool, error) {

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "name of the owner.")
	var n, e, d bigIntFlag
	fs.Var(&n, "n", "modulus.")
	fs.Var(&e, "e", "public exponent.")
	fs.Var(&d, "d", "private exponent.")

	if err := fs.Parse(args); err != nil {
		return false, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *name == "" || n.v == nil || e.v == nil || d.v == nil {
		return false, fmt.Errorf("%w: register requires -name, -n, -e and -d", errUsage)
	}

	book.Register(*name, rsa.KeyPair{N: n.v, E: e.v, D: d.v})
	fmt.Fprintln(app.Out, "Keys saved")

	return true, nil
}

func (app *App) keygen(book *chat.Book, args []string) (bool, error) {

	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	lower := fs.Int("min", 0, "lower bound of the primes.")
	upper := fs.Int("max", 0, "upper bound of the primes, excluded.")

	if err := fs.Parse(args); err != nil {
		return false, fmt.Errorf("%w: %v", errUsage, err)
	}

	kp, err := rsa.NewKeyGenerator(nil).GenKeyPair(*lower, *upper)
	if err != nil {
		return false, err
	}

	book.SetKeys(kp)
	app.Logger.Debug("keys generated", "min", *lower, "max", *upper, "n", kp.N)
	fmt.Fprintf(app.Out, "Keys generated and saved: n = %v, e = %v\n", kp.N, kp.E)

	return true, nil
}

func (app *App) contact(book *chat.Book, args []string) (bool, error) {

	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "name of the contact.")
	var n, e bigIntFlag
	fs.Var(&n, "n", "modulus.")
	fs.Var(&e, "e", "public exponent.")

	if err := fs.Parse(args); err != nil {
		return false, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *name == "" || n.v == nil || e.v == nil {
		return false, fmt.Errorf("%w: contact requires -name, -n and -e", errUsage)
	}

	id := chat.Identity{Name: *name, N: n.v, E: e.v}
	book.AddContact(id)
	fmt.Fprintf(app.Out, "Contact saved: %s %s\n", id.Name, id.Fingerprint())

	return true, nil
}

func (app *App) padding(book *chat.Book, args []string) (bool, error) {

	if len(args) != 1 {
		return false, fmt.Errorf("%w: padding takes exactly one argument", errUsage)
	}

	var p int
	if _, err := fmt.Sscanf(args[0], "%d", &p); err != nil {
		return false, fmt.Errorf("%w: invalid padding %q", errUsage, args[0])
	}

	if err := book.SetPadding(p); err != nil {
		return false, err
	}
	fmt.Fprintln(app.Out, "Padding updated")

	return true, nil
}

func (app *App) send(book *chat.Book, args []string) (err error) {

	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	to := fs.String("to", "", "name of the recipient.")

	if err = fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *to == "" {
		return fmt.Errorf("%w: send requires -to", errUsage)
	}

	text := strings.Join(fs.Args(), " ")
	if fs.NArg() == 0 {
		data, err := io.ReadAll(app.In)
		if err != nil {
			return err
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	msg, err := chat.Compose(book, *to, text, nil)
	if err != nil {
		return err
	}

	path := filepath.Join(app.Dir, chat.MessageFile(*to))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = msg.WriteTo(f); err != nil {
		return err
	}

	app.Logger.Debug("message written", "to", *to, "path", path, "runes", len(msg.Cipher))
	fmt.Fprintf(app.Out, "Encrypted message saved to %s\n", path)

	return nil
}

func (app *App) read(book *chat.Book, args []string) error {

	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("file", "", "message file (default <owner>.txt).")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	path := *file
	if path == "" {
		path = filepath.Join(app.Dir, chat.MessageFile(book.Self.Name))
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(app.Out, "No messages")
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	msg, err := chat.ReadMessage(f)
	if err != nil {
		return err
	}

	if msg.To.N.Cmp(book.Self.N) != 0 {
		app.Logger.Warn("message addressed to another key", "to", msg.To.Name, "n", msg.To.N)
	}

	text, err := chat.Open(book, msg)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "From %s (n = %v, e = %v) %s\n%s\n", msg.From.Name, msg.From.N, msg.From.E, msg.From.Fingerprint(), text)

	return nil
}
