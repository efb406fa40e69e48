package enceval

import (
    "testing"
)

func TestEvaluateBatch(t *testing.T) {
    _, keys := paillierTestKeys(t, 3, 2)
    circuit := SubCircuit()
    as := []int64{5, 3, 0, -4, 100}
    bs := []int64{3, 5, 0, -6, -100}
    records, err := EvaluateBatch(circuit, as, bs, keys, ReferenceFor(circuit.Op))
    if err != nil {
        t.Fatal(err)
    }
    if len(records) != len(as) {
        t.Fatalf("got %d records for %d pairs", len(records), len(as))
    }
    for i, record := range records {
        if !record.Match {
            t.Errorf("pair %d: mismatch, decrypted %d, expected %d", i, record.Decrypted, record.Expected)
        }
        if record.Decrypted != as[i]-bs[i] {
            t.Errorf("pair %d: wrong difference %d", i, record.Decrypted)
        }
    }
}

func TestEvaluateBatchColumnLengths(t *testing.T) {
    _, keys := paillierTestKeys(t, 2, 2)
    if _, err := EvaluateBatch(SubCircuit(), []int64{1, 2}, []int64{1}, keys, ReferenceFor(OpSub)); err == nil {
        t.Error("ragged operand columns accepted")
    }
}

func TestEvaluationSpace(t *testing.T) {
    _, keys := paillierTestKeys(t, 2, 2)
    space := keys.EvaluationSpace()
    if space.Scalarspace() {
        t.Error("ciphertext space reported as scalar")
    }
    a, err := Encrypt(6, keys)
    if err != nil {
        t.Fatal(err)
    }
    b, err := Encrypt(2, keys)
    if err != nil {
        t.Fatal(err)
    }
    diff, err := space.Subtract(a.payload, b.payload)
    if err != nil {
        t.Fatal(err)
    }
    dec, err := Decrypt(&Ciphertext{keyID: keys.id, payload: diff}, keys)
    if err != nil {
        t.Fatal(err)
    }
    if dec != 4 {
        t.Errorf("wrong difference after decryption, got %d", dec)
    }
    scaled, err := space.Scale(a.payload, int64(-3))
    if err != nil {
        t.Fatal(err)
    }
    dec, err = Decrypt(&Ciphertext{keyID: keys.id, payload: scaled}, keys)
    if err != nil {
        t.Fatal(err)
    }
    if dec != -18 {
        t.Errorf("wrong scaled value after decryption, got %d", dec)
    }
}
