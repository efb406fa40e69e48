package enceval

import (
    "io/ioutil"
    "os"
    "path/filepath"
    "testing"
)

func TestBuiltinCircuits(t *testing.T) {
    add := AddCircuit()
    if err := add.validate(); err != nil {
        t.Errorf("add circuit invalid: %v", err)
    }
    sub := SubCircuit()
    if err := sub.validate(); err != nil {
        t.Errorf("sub circuit invalid: %v", err)
    }
    if add.RequiresLookup() || sub.RequiresLookup() {
        t.Error("builtin circuits must not require lookup tables")
    }
}

func TestLoadCircuitArtifact(t *testing.T) {
    dir, err := ioutil.TempDir("", "enceval")
    if err != nil {
        t.Fatal(err)
    }
    defer os.RemoveAll(dir)
    path := filepath.Join(dir, "sub.json")
    artifact := `{"name":"sub","op":"SUB","inputs":2,"outputs":1,"ops":[{"kind":"SUB","dst":2,"lhs":0,"rhs":1}],"result":2}`
    if err := ioutil.WriteFile(path, []byte(artifact), 0600); err != nil {
        t.Fatal(err)
    }
    circuit, err := LoadCircuit(path)
    if err != nil {
        t.Fatalf("loading artifact failed: %v", err)
    }
    if circuit.Op != OpSub {
        t.Errorf("wrong operation kind %q", circuit.Op)
    }
    if len(circuit.Ops) != 1 || circuit.Ops[0].Kind != GateSub {
        t.Errorf("wrong op list %v", circuit.Ops)
    }
}

func TestLoadCircuitRejectsBadArtifacts(t *testing.T) {
    dir, err := ioutil.TempDir("", "enceval")
    if err != nil {
        t.Fatal(err)
    }
    defer os.RemoveAll(dir)
    bad := map[string]string{
        "arity.json": `{"name":"x","op":"ADD","inputs":3,"outputs":1,"ops":[{"kind":"ADD","dst":2,"lhs":0,"rhs":1}],"result":2}`,
        "opkind.json": `{"name":"x","op":"MUL","inputs":2,"outputs":1,"ops":[{"kind":"ADD","dst":2,"lhs":0,"rhs":1}],"result":2}`,
        "empty.json": `{"name":"x","op":"ADD","inputs":2,"outputs":1,"ops":[],"result":2}`,
        "undefreg.json": `{"name":"x","op":"ADD","inputs":2,"outputs":1,"ops":[{"kind":"ADD","dst":2,"lhs":0,"rhs":5}],"result":2}`,
        "inputwrite.json": `{"name":"x","op":"ADD","inputs":2,"outputs":1,"ops":[{"kind":"ADD","dst":1,"lhs":0,"rhs":1}],"result":1}`,
        "result.json": `{"name":"x","op":"ADD","inputs":2,"outputs":1,"ops":[{"kind":"ADD","dst":2,"lhs":0,"rhs":1}],"result":7}`,
        "noresult.json": `{"name":"sub","op":"SUB","inputs":2,"outputs":1,"ops":[{"kind":"SUB","dst":2,"lhs":0,"rhs":1}]}`,
        "inputresult.json": `{"name":"x","op":"ADD","inputs":2,"outputs":1,"ops":[{"kind":"ADD","dst":2,"lhs":0,"rhs":1}],"result":1}`,
    }
    for name, artifact := range bad {
        path := filepath.Join(dir, name)
        if err := ioutil.WriteFile(path, []byte(artifact), 0600); err != nil {
            t.Fatal(err)
        }
        if _, err := LoadCircuit(path); err == nil {
            t.Errorf("artifact %s accepted", name)
        }
    }
}
