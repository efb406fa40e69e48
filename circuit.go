package enceval

import (
    "encoding/json"
    "fmt"
    "io/ioutil"
)

// top-level operation kind declared by the transpiler
type OpKind string

const (
    OpAdd OpKind = "ADD"
    OpSub OpKind = "SUB"
)

// gate-level operation kinds the evaluator understands
type GateKind string

const (
    GateAdd GateKind = "ADD"
    GateSub GateKind = "SUB"
    GateLut GateKind = "LUT"
)

// GateOp is one step of the transpiled program. Dst, Lhs and Rhs index
// registers; registers 0 and 1 hold the two inputs.
type GateOp struct {
    Kind GateKind `json:"kind"`
    Dst int `json:"dst"`
    Lhs int `json:"lhs"`
    Rhs int `json:"rhs"`
    Table []int64 `json:"table,omitempty"`
}

// Circuit is a transpiled two-input one-output integer function. It is
// immutable once loaded; the harness never rewrites the op list.
type Circuit struct {
    Name string `json:"name"`
    Op OpKind `json:"op"`
    Inputs int `json:"inputs"`
    Outputs int `json:"outputs"`
    Ops []GateOp `json:"ops"`
    Result int `json:"result"`
}

// LoadCircuit reads a circuit artifact produced by the transpiler.
func LoadCircuit(path string) (*Circuit, error) {
    dat, err := ioutil.ReadFile(path)
    if err != nil {
        return nil, fmt.Errorf("open circuit artifact: %w", err)
    }
    var circuit Circuit
    if err := json.Unmarshal(dat, &circuit); err != nil {
        return nil, fmt.Errorf("parse circuit artifact: %w", err)
    }
    if err := circuit.validate(); err != nil {
        return nil, err
    }
    return &circuit, nil
}

func (c *Circuit) validate() error {
    switch c.Op {
    case OpAdd, OpSub:
    default:
        return configErrorf("circuit %q declares unknown operation kind %q", c.Name, c.Op)
    }
    if c.Inputs != 2 || c.Outputs != 1 {
        return configErrorf("circuit %q has arity %d in / %d out, want 2 in / 1 out", c.Name, c.Inputs, c.Outputs)
    }
    if len(c.Ops) == 0 {
        return configErrorf("circuit %q has an empty op list", c.Name)
    }
    // registers 0 and 1 are the inputs, every other register must be
    // written before it is read
    defined := map[int]bool{0: true, 1: true}
    for i, op := range c.Ops {
        if op.Dst < 2 {
            return configErrorf("circuit %q op %d writes input register %d", c.Name, i, op.Dst)
        }
        switch op.Kind {
        case GateAdd, GateSub:
            if !defined[op.Lhs] || !defined[op.Rhs] {
                return configErrorf("circuit %q op %d reads an undefined register", c.Name, i)
            }
        case GateLut:
            if !defined[op.Lhs] {
                return configErrorf("circuit %q op %d reads an undefined register", c.Name, i)
            }
            if len(op.Table) == 0 {
                return configErrorf("circuit %q op %d has an empty lookup table", c.Name, i)
            }
        default:
            return configErrorf("circuit %q op %d has unknown gate kind %q", c.Name, i, op.Kind)
        }
        defined[op.Dst] = true
    }
    // the result must come out of the op list; inputs pass through
    // registers 0 and 1 and are never a valid result
    if c.Result < 2 || !defined[c.Result] {
        return configErrorf("circuit %q result register %d is not produced by the op list", c.Name, c.Result)
    }
    return nil
}

// RequiresLookup reports whether the artifact contains table-lookup
// gates, which need a provisioned lookup table in the parameter set.
func (c *Circuit) RequiresLookup() bool {
    for _, op := range c.Ops {
        if op.Kind == GateLut {
            return true
        }
    }
    return false
}

// number of registers the evaluator must allocate
func (c *Circuit) registers() int {
    max := c.Result
    for _, op := range c.Ops {
        if op.Dst > max {
            max = op.Dst
        }
        if op.Lhs > max {
            max = op.Lhs
        }
        if op.Rhs > max {
            max = op.Rhs
        }
    }
    return max + 1
}

// AddCircuit returns the built-in artifact equivalent to transpiling
// the two-operand addition function.
func AddCircuit() *Circuit {
    return &Circuit{
        Name: "add",
        Op: OpAdd,
        Inputs: 2,
        Outputs: 1,
        Ops: []GateOp{{Kind: GateAdd, Dst: 2, Lhs: 0, Rhs: 1}},
        Result: 2,
    }
}

// SubCircuit returns the built-in artifact equivalent to transpiling
// the two-operand subtraction function: first operand minus second,
// operand order fixed at transpile time.
func SubCircuit() *Circuit {
    return &Circuit{
        Name: "sub",
        Op: OpSub,
        Inputs: 2,
        Outputs: 1,
        Ops: []GateOp{{Kind: GateSub, Dst: 2, Lhs: 0, Rhs: 1}},
        Result: 2,
    }
}
