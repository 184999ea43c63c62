package runbits_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/blobstore"
	"github.com/hupe1980/runbits/catalog"
	"github.com/hupe1980/runbits/codec"
)

// Example_basic demonstrates setting bits and ranges.
func Example_basic() {
	b := runbits.New(0)
	if err := b.SetRange(10, 19, true); err != nil {
		log.Fatal(err)
	}
	b.Set(20)
	b.Set(50)

	fmt.Println(b)
	fmt.Println(b.Count(true), b.Test(15), b.Test(21))
	// Output:
	// {[10,20] [50,50]}/total=51
	// 12 true false
}

// Example_operations demonstrates the set operations.
func Example_operations() {
	a := runbits.New(0)
	_ = a.SetRange(0, 9, true)
	b := runbits.New(0)
	_ = b.SetRange(5, 14, true)

	fmt.Println(runbits.And(a, b))
	fmt.Println(runbits.Xor(a, b))
	fmt.Println(runbits.Not(a))
	// Output:
	// {[5,9]}/total=15
	// {[0,4] [10,14]}/total=15
	// {}/total=10
}

// Example_codec demonstrates framing a bitset with compression.
func Example_codec() {
	b := runbits.New(0)
	_ = b.AddRun(1000, 500)

	data, err := codec.Encode(b, codec.Zstd)
	if err != nil {
		log.Fatal(err)
	}
	decoded, err := codec.Decode(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(decoded.EqualBits(b))
	// Output: true
}

// Example_catalog demonstrates persisting named bitsets.
func Example_catalog() {
	ctx := context.Background()
	cat := catalog.New(blobstore.NewMemoryStore(), catalog.WithCompression(codec.LZ4))

	b := runbits.New(0)
	b.Set(7)
	if err := cat.Save(ctx, "users/active", b); err != nil {
		log.Fatal(err)
	}

	loaded, err := cat.Load(ctx, "users/active")
	if err != nil {
		log.Fatal(err)
	}
	names, _ := cat.List(ctx)
	fmt.Println(loaded, names)
	// Output: {[7,7]}/total=8 [users/active]
}
