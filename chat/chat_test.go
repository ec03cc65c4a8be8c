package chat_test

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/imat-lab/imatlab/chat"
	"github.com/imat-lab/imatlab/rsa"
	"github.com/imat-lab/imatlab/utils/sampling"
	"github.com/stretchr/testify/require"
)

func newTestPRNG(t *testing.T, key string) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG([]byte(key))
	require.NoError(t, err)
	return prng
}

func newTestBook(t *testing.T, name string, minPrime, maxPrime int) *chat.Book {
	kp, err := rsa.NewKeyGenerator(newTestPRNG(t, name)).GenKeyPair(minPrime, maxPrime)
	require.NoError(t, err)
	book := chat.NewBook()
	book.Register(name, kp)
	return book
}

// bigIntComparer compares *big.Int by value.
var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.Cmp(y) == 0
})

func TestBook(t *testing.T) {

	t.Run("New", func(t *testing.T) {
		book := chat.NewBook()
		require.Equal(t, chat.AnonymousName, book.Self.Name)
		require.False(t, book.Self.HasKeys())
		require.Zero(t, book.Padding)
		require.Empty(t, book.Contacts)
	})

	t.Run("Contacts", func(t *testing.T) {
		book := chat.NewBook()
		alice := chat.Identity{Name: "alice", N: big.NewInt(100160063), E: big.NewInt(7)}
		book.AddContact(alice)
		book.AddContact(chat.Identity{Name: "bob", N: big.NewInt(6), E: big.NewInt(1)})

		got, err := book.Contact("alice")
		require.NoError(t, err)
		require.Equal(t, alice.Fingerprint(), got.Fingerprint())

		// Same name replaces the contact.
		book.AddContact(chat.Identity{Name: "alice", N: big.NewInt(35), E: big.NewInt(5)})
		require.Len(t, book.Contacts, 2)
		got, err = book.Contact("alice")
		require.NoError(t, err)
		require.Equal(t, "35", got.N.String())

		_, err = book.Contact("carol")
		require.ErrorIs(t, err, chat.ErrContactNotFound)
	})

	t.Run("Padding", func(t *testing.T) {
		book := chat.NewBook()
		require.NoError(t, book.SetPadding(3))
		require.Equal(t, 3, book.Padding)
		require.Error(t, book.SetPadding(-1))
		require.Equal(t, 3, book.Padding)
	})

	t.Run("SetKeys", func(t *testing.T) {
		book := newTestBook(t, "alice", 10000, 10100)
		book.SetKeys(rsa.KeyPair{N: big.NewInt(6), E: big.NewInt(1), D: big.NewInt(9311)})
		require.Equal(t, "alice", book.Self.Name)
		require.Equal(t, "6", book.Self.N.String())
	})

	t.Run("SaveLoad", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), chat.DefaultBookPath)

		book, err := chat.LoadBook(path)
		require.NoError(t, err)
		require.Equal(t, chat.AnonymousName, book.Self.Name)

		book = newTestBook(t, "alice", 10000, 10100)
		require.NoError(t, book.SetPadding(2))
		book.AddContact(chat.Identity{Name: "bob", N: big.NewInt(100160063), E: big.NewInt(65537)})
		require.NoError(t, book.Save(path))

		loaded, err := chat.LoadBook(path)
		require.NoError(t, err)
		if diff := cmp.Diff(book, loaded, bigIntComparer); diff != "" {
			t.Fatalf("book mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Corrupted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, chat.NewBook().Save(path))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := chat.LoadBook(path)
		require.Error(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	a := chat.Identity{Name: "alice", N: big.NewInt(100160063), E: big.NewInt(7)}
	b := chat.Identity{Name: "alice", N: big.NewInt(100160063), E: big.NewInt(11)}
	require.Len(t, a.Fingerprint(), 16)
	require.Equal(t, a.Fingerprint(), a.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestMessage(t *testing.T) {

	alice := newTestBook(t, "alice", 100000, 100500)
	bob := newTestBook(t, "bob", 100000, 100500)

	alice.AddContact(bob.Self.Identity)
	require.NoError(t, alice.SetPadding(3))

	text := "Hola Bob, ¿quedamos a las 5? ☕"

	t.Run("ComposeOpen", func(t *testing.T) {
		msg, err := chat.Compose(alice, "bob", text, newTestPRNG(t, "message"))
		require.NoError(t, err)
		require.Equal(t, "alice", msg.From.Name)
		require.Equal(t, "bob", msg.To.Name)
		require.Equal(t, 3, msg.Padding)
		require.Len(t, msg.Cipher, len([]rune(text)))

		got, err := chat.Open(bob, msg)
		require.NoError(t, err)
		require.Equal(t, text, got)
	})

	t.Run("File", func(t *testing.T) {
		msg, err := chat.Compose(alice, "bob", text, nil)
		require.NoError(t, err)

		var buf bytes.Buffer
		n, err := msg.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(buf.Len()), n)

		lines := strings.Split(buf.String(), "\n")
		require.Len(t, lines, 3)
		require.Equal(t, "From alice (n = "+alice.Self.N.String()+", e = "+alice.Self.E.String()+")", lines[0])
		require.True(t, strings.HasSuffix(lines[1], ", p = 3)"))

		read, err := chat.ReadMessage(&buf)
		require.NoError(t, err)
		if diff := cmp.Diff(msg, read, bigIntComparer); diff != "" {
			t.Fatalf("message mismatch (-want +got):\n%s", diff)
		}

		got, err := chat.Open(bob, read)
		require.NoError(t, err)
		require.Equal(t, text, got)
	})

	t.Run("PaddingFromMessage", func(t *testing.T) {
		msg, err := chat.Compose(alice, "bob", "hi", nil)
		require.NoError(t, err)

		// The recipient decrypts with the padding of the message, not of their own book.
		require.NoError(t, bob.SetPadding(0))
		got, err := chat.Open(bob, msg)
		require.NoError(t, err)
		require.Equal(t, "hi", got)
	})

	t.Run("UnknownRecipient", func(t *testing.T) {
		_, err := chat.Compose(alice, "carol", text, nil)
		require.ErrorIs(t, err, chat.ErrContactNotFound)
	})

	t.Run("NoKeys", func(t *testing.T) {
		msg, err := chat.Compose(alice, "bob", text, nil)
		require.NoError(t, err)
		_, err = chat.Open(chat.NewBook(), msg)
		require.ErrorIs(t, err, chat.ErrNoKeys)
	})

	t.Run("EmptyText", func(t *testing.T) {
		msg, err := chat.Compose(alice, "bob", "", nil)
		require.NoError(t, err)

		var buf bytes.Buffer
		_, err = msg.WriteTo(&buf)
		require.NoError(t, err)

		read, err := chat.ReadMessage(&buf)
		require.NoError(t, err)
		require.Empty(t, read.Cipher)

		got, err := chat.Open(bob, read)
		require.NoError(t, err)
		require.Equal(t, "", got)
	})
}

func TestReadMessage(t *testing.T) {

	msg, err := chat.ReadMessage(strings.NewReader("From Ana María (n = 6, e = 1)\r\nTo Bob (n = 35, e = 5, p = 2)\r\n12 0 34\n"))
	require.NoError(t, err)
	require.Equal(t, "Ana María", msg.From.Name)
	require.Equal(t, "35", msg.To.N.String())
	require.Equal(t, 2, msg.Padding)
	require.Len(t, msg.Cipher, 3)

	for _, input := range []string{
		"",
		"From alice (n = 6, e = 1)",
		"Hello alice\nTo bob (n = 35, e = 5, p = 2)\n1",
		"From alice (n = 6, e = 1)\nTo bob (n = 35, e = 5)\n1",
		"From alice (n = 6, e = 1)\nTo bob (n = 35, e = 5, p = 2)\n1 x 3",
	} {
		_, err := chat.ReadMessage(strings.NewReader(input))
		require.ErrorIsf(t, err, chat.ErrMalformedMessage, "input %q", input)
	}

	require.Equal(t, "bob.txt", chat.MessageFile("bob"))
}
