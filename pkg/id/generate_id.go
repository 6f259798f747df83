package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes). Used
// as the public identifier for ledger transactions.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewAccountNumber returns an external account number of the form
// "ACC" + 9 digits. Collisions are caught by the unique index on accounts.
func NewAccountNumber() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	return fmt.Sprintf("ACC%09d", n.Int64())
}
