package enceval

import (
    "errors"
    "testing"
)

func TestLoadParameterPresets(t *testing.T) {
    for _, preset := range []string{PresetDefault, PresetLight} {
        params, err := LoadParameters(preset)
        if err != nil {
            t.Fatalf("loading preset %q failed: %v", preset, err)
        }
        if params.T != 65537 {
            t.Errorf("preset %q: wrong plaintext modulus %d", preset, params.T)
        }
        if params.LookupTableSize != 0 {
            t.Errorf("preset %q: unexpected lookup table size %d", preset, params.LookupTableSize)
        }
    }
}

func TestLoadUnknownPreset(t *testing.T) {
    _, err := LoadParameters("nosuchpreset")
    var confErr *ConfigurationError
    if !errors.As(err, &confErr) {
        t.Errorf("expected ConfigurationError, got %v", err)
    }
}

func TestLookupCircuitRejectedBeforeKeygen(t *testing.T) {
    params, err := LoadParameters(PresetLight)
    if err != nil {
        t.Fatal(err)
    }
    circuit := &Circuit{
        Name: "lut",
        Op: OpAdd,
        Inputs: 2,
        Outputs: 1,
        Ops: []GateOp{
            {Kind: GateLut, Dst: 2, Lhs: 0, Table: []int64{0, 1, 2, 3}},
            {Kind: GateAdd, Dst: 3, Lhs: 2, Rhs: 1},
        },
        Result: 3,
    }
    if err := circuit.validate(); err != nil {
        t.Fatalf("lookup circuit should be loadable: %v", err)
    }
    err = params.CompatibleWith(circuit)
    var confErr *ConfigurationError
    if !errors.As(err, &confErr) {
        t.Errorf("expected ConfigurationError for lookup circuit without a table, got %v", err)
    }
}

func TestValidateRejectsBadValues(t *testing.T) {
    params, err := LoadParameters(PresetLight)
    if err != nil {
        t.Fatal(err)
    }
    params.Sigma = 0
    if err := params.validate(); err == nil {
        t.Error("zero sigma accepted")
    }
    params.Sigma = 3.19
    params.LookupTableSize = -1
    if err := params.validate(); err == nil {
        t.Error("negative lookup table size accepted")
    }
}
