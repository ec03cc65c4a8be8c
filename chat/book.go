// Package chat implements the contact book and the message files exchanged
// by the cryptochat tool on top of the rsa package.
package chat

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/imat-lab/imatlab/rsa"
	"github.com/zeebo/blake3"
)

// DefaultBookPath is the contact book used when none is configured.
const DefaultBookPath = "contactos.json"

// AnonymousName is the name of the owner of a fresh book.
const AnonymousName = "Anonimo"

var (
	// ErrContactNotFound indicates a name absent from the book.
	ErrContactNotFound = errors.New("chat: contact not found")

	// ErrNoKeys indicates a book whose owner has no key pair yet.
	ErrNoKeys = errors.New("chat: no keys registered")

	// ErrMalformedMessage indicates a message file that cannot be parsed.
	ErrMalformedMessage = errors.New("chat: malformed message")
)

// Identity is a named public key.
type Identity struct {
	Name string   `json:"name"`
	N    *big.Int `json:"n"`
	E    *big.Int `json:"e"`
}

// PublicKey returns the rsa public key of the identity.
func (id Identity) PublicKey() rsa.PublicKey {
	return rsa.PublicKey{N: id.N, E: id.E}
}

// Fingerprint returns a short blake3 digest of the name and key, to compare
// identities out of band.
func (id Identity) Fingerprint() string {
	h := blake3.New()
	fmt.Fprintf(h, "%s\x00%v\x00%v", id.Name, id.N, id.E)
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// Account is the identity of the owner of a book together with its private exponent.
type Account struct {
	Identity
	D *big.Int `json:"d"`
}

// HasKeys reports whether the account holds a usable key pair.
func (acc Account) HasKeys() bool {
	return acc.N != nil && acc.N.Sign() > 0 && acc.E != nil && acc.D != nil
}

// PrivateKey returns the rsa private key of the account.
func (acc Account) PrivateKey() rsa.PrivateKey {
	return rsa.PrivateKey{N: acc.N, D: acc.D}
}

// Book is the persisted state of a user: their account, the padding applied
// to outgoing messages and their contacts.
type Book struct {
	Padding  int        `json:"padding"`
	Self     Account    `json:"self"`
	Contacts []Identity `json:"contacts"`
}

// NewBook returns an empty book owned by AnonymousName.
func NewBook() *Book {
	return &Book{
		Self: Account{
			Identity: Identity{Name: AnonymousName, N: new(big.Int), E: new(big.Int)},
			D:        new(big.Int),
		},
	}
}

// LoadBook reads the book stored at path, or returns NewBook if the file does not exist.
func LoadBook(path string) (*Book, error) {

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, err
	}

	book := NewBook()
	if err = json.Unmarshal(data, book); err != nil {
		return nil, fmt.Errorf("cannot LoadBook %s: %w", path, err)
	}

	return book, nil
}

// Save writes the book to path.
func (b *Book) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// Register replaces the identity and keys of the owner.
func (b *Book) Register(name string, kp rsa.KeyPair) {
	b.Self = Account{
		Identity: Identity{Name: name, N: kp.N, E: kp.E},
		D:        kp.D,
	}
}

// SetKeys replaces the keys of the owner and keeps their name.
func (b *Book) SetKeys(kp rsa.KeyPair) {
	b.Register(b.Self.Name, kp)
}

// SetPadding sets the number of padding digits of outgoing messages.
func (b *Book) SetPadding(padding int) error {
	if padding < 0 {
		return fmt.Errorf("cannot SetPadding: padding must be non-negative but is %d", padding)
	}
	b.Padding = padding
	return nil
}

// AddContact adds the identity to the book, replacing any contact of the same name.
func (b *Book) AddContact(id Identity) {
	for i := range b.Contacts {
		if b.Contacts[i].Name == id.Name {
			b.Contacts[i] = id
			return
		}
	}
	b.Contacts = append(b.Contacts, id)
}

// Contact returns the contact registered under name.
func (b *Book) Contact(name string) (Identity, error) {
	for _, id := range b.Contacts {
		if id.Name == name {
			return id, nil
		}
	}
	return Identity{}, fmt.Errorf("%w: %q", ErrContactNotFound, name)
}
