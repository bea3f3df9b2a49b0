package memsig_test

import (
	"fmt"

	"github.com/s-hammon/memsig"
)

func ExampleParse() {
	sig, err := memsig.Parse("8B 15 ?? ?? ?? ?? 48 63")
	if err != nil {
		panic(err)
	}

	image := []byte{0xCC, 0x8B, 0x15, 0x10, 0x20, 0x30, 0x40, 0x48, 0x63, 0xC3}
	fmt.Println(sig.Len(), sig.Index(image))
	// Output:
	// 8 1
}

func ExampleNewMaskedString() {
	sig, err := memsig.NewMaskedString([]byte{0x11, 0x12, 0x13, 0x14}, "x?xx", memsig.TextUnknown)
	if err != nil {
		panic(err)
	}

	fmt.Println(sig)
	fmt.Println(sig.Find([]byte{0x11, 0xFF, 0x13, 0x14}))
	fmt.Println(sig.Find([]byte{0x11, 0xFF, 0x99, 0x14}))
	// Output:
	// 11 ?? 13 14
	// 0
	// 4
}
