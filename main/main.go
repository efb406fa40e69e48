package main

import (
    "fmt"
    "os"
    "strconv"
    "time"

    "github.com/karmafhe/enceval"
)

func usage() {
    fmt.Println("usage: enceval backend parties threshold circuit a b")
    fmt.Println("  backend   bfv | paillier")
    fmt.Println("  circuit   add | sub | path to a circuit artifact")
    os.Exit(2)
}

func fatal(err error) {
    fmt.Println(err)
    os.Exit(2)
}

func main() {
    startT := time.Now()

    if len(os.Args) != 7 {
        usage()
    }

    var backend enceval.Backend
    switch os.Args[1] {
    case "bfv":
        backend = enceval.BFVBackend{}
    case "paillier":
        backend = enceval.PaillierBackend{}
    default:
        fmt.Printf("unknown backend %q\n", os.Args[1])
        usage()
    }

    parties, err := strconv.Atoi(os.Args[2])
    if err != nil {
        fmt.Println("error when parsing parties")
        usage()
    }
    threshold, err := strconv.Atoi(os.Args[3])
    if err != nil {
        fmt.Println("error when parsing threshold")
        usage()
    }
    a, err := strconv.ParseInt(os.Args[5], 10, 64)
    if err != nil {
        fmt.Println("error when parsing operand a")
        usage()
    }
    b, err := strconv.ParseInt(os.Args[6], 10, 64)
    if err != nil {
        fmt.Println("error when parsing operand b")
        usage()
    }

    params, err := enceval.LoadParameters(enceval.PresetDefault)
    if err != nil {
        fatal(err)
    }

    var circuit *enceval.Circuit
    switch os.Args[4] {
    case "add":
        circuit = enceval.AddCircuit()
    case "sub":
        circuit = enceval.SubCircuit()
    default:
        circuit, err = enceval.LoadCircuit(os.Args[4])
        if err != nil {
            fatal(err)
        }
    }

    // reject unsatisfiable combinations before any key material exists
    if err := params.CompatibleWith(circuit); err != nil {
        fatal(err)
    }

    fmt.Printf("generating keys: %s, %d parties, threshold %d\n", backend.Name(), parties, threshold)
    keys, err := backend.GenerateKeys(params, parties, threshold)
    if err != nil {
        fatal(err)
    }
    fmt.Printf("generated %s key material for %d parties, decryption threshold %d\n",
        keys.Backend(), keys.Parties(), keys.Threshold())

    fmt.Printf("evaluating circuit %q on (%d, %d)\n", circuit.Name, a, b)
    session := enceval.NewSession(params)
    record, err := session.Run(keys, circuit, a, b, enceval.ReferenceFor(circuit.Op))
    keys.Drop()
    if err != nil {
        fatal(err)
    }

    fmt.Printf("match: %v\ndecrypted: %d\nexpected: %d\n", record.Match, record.Decrypted, record.Expected)
    fmt.Printf("%f s elapsed\n", time.Now().Sub(startT).Seconds())
    if !record.Match {
        os.Exit(1)
    }
}
