//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/markkurossi/mpi"
	"github.com/markkurossi/mpi/drbg"
	"github.com/markkurossi/text/superscript"
)

var (
	verbose = false
)

func main() {
	gen := flag.Int("gen", 0, "Generate a prime with the given bit count")
	safe := flag.Bool("safe", false, "Generate a safe prime")
	prime := flag.String("prime", "", "Test the argument value for primality")
	bench := flag.Bool("bench", false, "Benchmark the arithmetic operations")
	radix := flag.Int("r", 16, "Input and output radix")
	seed := flag.String("seed", "", "Use a deterministic RNG with the seed")
	fVerbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	verbose = *fVerbose

	var rng io.Reader = rand.Reader
	if len(*seed) > 0 {
		var err error
		rng, err = drbg.New([]byte(*seed))
		if err != nil {
			log.Fatal(err)
		}
	}

	switch {
	case *gen > 0:
		genPrime(*gen, *safe, *radix, rng)

	case len(*prime) > 0:
		testPrime(*prime, *radix, rng)

	case *bench:
		benchmark(rng)

	default:
		flag.Usage()
		os.Exit(1)
	}
}

func genPrime(nbits int, safe bool, radix int, rng io.Reader) {
	x := mpi.NewInt(0)
	defer x.Free()

	start := time.Now()
	if err := x.GenPrime(nbits, safe, rng); err != nil {
		log.Fatal(err)
	}
	if verbose {
		fmt.Printf("%d bits in %s\n", nbits, time.Since(start))
	}
	if err := x.WriteFile("", radix, nil); err != nil {
		log.Fatal(err)
	}
}

func testPrime(value string, radix int, rng io.Reader) {
	x := mpi.NewInt(0)
	defer x.Free()

	if err := x.SetString(value, radix); err != nil {
		log.Fatal(err)
	}
	err := x.IsPrime(rng)
	switch err {
	case nil:
		fmt.Printf("probably prime\n")

	case mpi.ErrNotAcceptable:
		fmt.Printf("composite\n")
		os.Exit(1)

	default:
		log.Fatal(err)
	}
}

// pow2 formats the bit count as a power of two.
func pow2(bits int) string {
	return fmt.Sprintf("2%s", superscript.Itoa(bits))
}

func benchmark(rng io.Reader) {
	timing := NewTiming()

	for _, bits := range []int{512, 1024, 2048} {
		a := mpi.NewInt(0)
		b := mpi.NewInt(0)
		n := mpi.NewInt(0)
		x := mpi.NewInt(0)
		rr := mpi.NewInt(0)

		if err := a.FillRandom(rng, bits/8); err != nil {
			log.Fatal(err)
		}
		if err := b.FillRandom(rng, bits/8); err != nil {
			log.Fatal(err)
		}
		if err := n.FillRandom(rng, bits/8); err != nil {
			log.Fatal(err)
		}
		// Make the modulus odd with the top bit set.
		if err := n.SetBit(0, 1); err != nil {
			log.Fatal(err)
		}
		if err := n.SetBit(bits-1, 1); err != nil {
			log.Fatal(err)
		}

		count := 0
		start := time.Now()
		for time.Since(start) < time.Second {
			if err := x.Mul(a, b); err != nil {
				log.Fatal(err)
			}
			count++
		}
		timing.Sample(fmt.Sprintf("mul %s", pow2(bits)),
			[]string{opsPerSec(count, time.Since(start))})

		count = 0
		start = time.Now()
		for time.Since(start) < 5*time.Second {
			if err := x.ExpMod(a, b, n, rr); err != nil {
				log.Fatal(err)
			}
			count++
		}
		timing.Sample(fmt.Sprintf("exp %s", pow2(bits)),
			[]string{opsPerSec(count, time.Since(start))})

		a.Free()
		b.Free()
		n.Free()
		x.Free()
		rr.Free()
	}
	timing.Print()
}

func opsPerSec(count int, d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(count)/d.Seconds())
}
