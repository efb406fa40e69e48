package enceval

// Record is the outcome of one verified evaluation. A false Match
// after a clean decryption points at noise-budget exhaustion rather
// than a stage failure, and is reported as a result, not an error.
type Record struct {
    Match bool
    Decrypted int64
    Expected int64
}

// Verify decrypts the encrypted result and compares it against the
// cleartext reference computation over the original operands.
func Verify(result *Ciphertext, keys *KeyMaterial, reference func(int64, int64) int64, a, b int64) (Record, error) {
    decrypted, err := Decrypt(result, keys)
    if err != nil {
        return Record{}, err
    }
    expected := reference(a, b)
    return Record{
        Match: decrypted == expected,
        Decrypted: decrypted,
        Expected: expected,
    }, nil
}

// ReferenceFor returns the cleartext reference function for a declared
// operation kind.
func ReferenceFor(op OpKind) func(int64, int64) int64 {
    switch op {
    case OpSub:
        return func(a, b int64) int64 { return a - b }
    default:
        return func(a, b int64) int64 { return a + b }
    }
}
