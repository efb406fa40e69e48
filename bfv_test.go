package enceval

import (
    "errors"
    "reflect"
    "testing"
)

func TestBFVSubtraction(t *testing.T) {
    params, err := LoadParameters(PresetLight)
    if err != nil {
        t.Fatal(err)
    }
    keys, err := BFVBackend{}.GenerateKeys(params, 2, 2)
    if err != nil {
        t.Fatal(err)
    }
    circuit := SubCircuit()
    reference := ReferenceFor(circuit.Op)

    pairs := [][2]int64{{5, 3}, {3, 5}, {0, 0}, {-7, 11}, {1000, -1000}}
    for _, pair := range pairs {
        record, err := NewSession(params).Run(keys, circuit, pair[0], pair[1], reference)
        if err != nil {
            t.Fatalf("session (%d, %d) failed: %v", pair[0], pair[1], err)
        }
        if !record.Match {
            t.Errorf("mismatch for (%d, %d): decrypted %d, expected %d", pair[0], pair[1], record.Decrypted, record.Expected)
        }
        if record.Decrypted != pair[0]-pair[1] {
            t.Errorf("wrong difference for (%d, %d): got %d", pair[0], pair[1], record.Decrypted)
        }
    }
}

func TestBFVAddition(t *testing.T) {
    params, err := LoadParameters(PresetLight)
    if err != nil {
        t.Fatal(err)
    }
    keys, err := BFVBackend{}.GenerateKeys(params, 2, 2)
    if err != nil {
        t.Fatal(err)
    }
    circuit := AddCircuit()
    record, err := NewSession(params).Run(keys, circuit, -2, 7, ReferenceFor(circuit.Op))
    if err != nil {
        t.Fatal(err)
    }
    if !record.Match || record.Decrypted != 5 {
        t.Errorf("wrong sum: %+v", record)
    }
}

func TestBFVEncryptionNondeterminism(t *testing.T) {
    params, err := LoadParameters(PresetLight)
    if err != nil {
        t.Fatal(err)
    }
    keys, err := BFVBackend{}.GenerateKeys(params, 2, 2)
    if err != nil {
        t.Fatal(err)
    }
    c1, err := Encrypt(42, keys)
    if err != nil {
        t.Fatal(err)
    }
    c2, err := Encrypt(42, keys)
    if err != nil {
        t.Fatal(err)
    }
    if reflect.DeepEqual(c1.payload, c2.payload) {
        t.Error("two encryptions of one plaintext are bit-identical")
    }
    d1, err := Decrypt(c1, keys)
    if err != nil {
        t.Fatal(err)
    }
    d2, err := Decrypt(c2, keys)
    if err != nil {
        t.Fatal(err)
    }
    if d1 != 42 || d2 != 42 {
        t.Errorf("wrong values after decryption: %d, %d", d1, d2)
    }
}

func TestBFVThresholdMustEqualParties(t *testing.T) {
    params, err := LoadParameters(PresetLight)
    if err != nil {
        t.Fatal(err)
    }
    if _, err := (BFVBackend{}).GenerateKeys(params, 3, 2); err == nil {
        t.Error("partial threshold accepted by the n-of-n bfv backend")
    }
}

func TestBFVOperandRange(t *testing.T) {
    params, err := LoadParameters(PresetLight)
    if err != nil {
        t.Fatal(err)
    }
    keys, err := BFVBackend{}.GenerateKeys(params, 2, 2)
    if err != nil {
        t.Fatal(err)
    }
    _, err = Encrypt(params.maxOperand()+1, keys)
    var confErr *ConfigurationError
    if !errors.As(err, &confErr) {
        t.Errorf("expected ConfigurationError for an operand beyond the plaintext range, got %v", err)
    }
}
