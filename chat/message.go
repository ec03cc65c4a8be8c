package chat

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/imat-lab/imatlab/rsa"
	"github.com/imat-lab/imatlab/utils/bignum"
	"github.com/imat-lab/imatlab/utils/sampling"
)

// Message is an encrypted message as stored in a message file:
//
//	From <name> (n = <n>, e = <e>)
//	To <name> (n = <n>, e = <e>, p = <padding>)
//	<c1> <c2> ...
type Message struct {
	From    Identity
	To      Identity
	Padding int
	Cipher  []*big.Int
}

var (
	fromLine = regexp.MustCompile(`^From (.*) \(n = (-?\d+), e = (-?\d+)\)$`)
	toLine   = regexp.MustCompile(`^To (.*) \(n = (-?\d+), e = (-?\d+), p = (\d+)\)$`)
)

// MessageFile returns the name of the file holding messages addressed to name.
func MessageFile(name string) string {
	return name + ".txt"
}

// Compose encrypts text for the contact named to with the padding of the book.
func Compose(b *Book, to string, text string, prng sampling.PRNG) (msg Message, err error) {

	recipient, err := b.Contact(to)
	if err != nil {
		return
	}

	ct, err := rsa.NewEncryptor(recipient.PublicKey(), b.Padding, prng).EncryptString(text)
	if err != nil {
		return msg, fmt.Errorf("cannot Compose: %w", err)
	}

	return Message{
		From:    b.Self.Identity,
		To:      recipient,
		Padding: b.Padding,
		Cipher:  ct,
	}, nil
}

// Open decrypts a message with the keys of the owner of the book, removing
// the padding recorded in the message.
func Open(b *Book, msg Message) (string, error) {

	if !b.Self.HasKeys() {
		return "", ErrNoKeys
	}

	text, err := rsa.NewDecryptor(b.Self.PrivateKey(), msg.Padding).DecryptString(msg.Cipher)
	if err != nil {
		return "", fmt.Errorf("cannot Open: %w", err)
	}

	return text, nil
}

// WriteTo writes the message in the message file format.
func (msg Message) WriteTo(w io.Writer) (n int64, err error) {

	cipher := make([]string, len(msg.Cipher))
	for i, c := range msg.Cipher {
		cipher[i] = c.String()
	}

	inc, err := fmt.Fprintf(w, "From %s (n = %v, e = %v)\nTo %s (n = %v, e = %v, p = %d)\n%s",
		msg.From.Name, msg.From.N, msg.From.E,
		msg.To.Name, msg.To.N, msg.To.E, msg.Padding,
		strings.Join(cipher, " "))

	return int64(inc), err
}

// ReadMessage parses a message in the message file format.
func ReadMessage(r io.Reader) (msg Message, err error) {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)

	lines := make([]string, 0, 3)
	for len(lines) < 3 && scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err = scanner.Err(); err != nil {
		return
	}

	if len(lines) < 2 {
		return msg, fmt.Errorf("%w: missing header", ErrMalformedMessage)
	}

	from := fromLine.FindStringSubmatch(lines[0])
	if from == nil {
		return msg, fmt.Errorf("%w: invalid sender line %q", ErrMalformedMessage, lines[0])
	}
	if msg.From, err = parseIdentity(from[1:4]); err != nil {
		return
	}

	to := toLine.FindStringSubmatch(lines[1])
	if to == nil {
		return msg, fmt.Errorf("%w: invalid recipient line %q", ErrMalformedMessage, lines[1])
	}
	if msg.To, err = parseIdentity(to[1:4]); err != nil {
		return
	}

	if msg.Padding, err = strconv.Atoi(to[4]); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if len(lines) < 3 {
		return
	}

	for _, field := range strings.Fields(lines[2]) {
		c, err := bignum.ParseInt(field)
		if err != nil {
			return msg, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		msg.Cipher = append(msg.Cipher, c)
	}

	return
}

// parseIdentity builds an identity from the name, n and e submatches of a header line.
func parseIdentity(fields []string) (id Identity, err error) {
	id.Name = fields[0]
	if id.N, err = bignum.ParseInt(fields[1]); err != nil {
		return id, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if id.E, err = bignum.ParseInt(fields[2]); err != nil {
		return id, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return
}
