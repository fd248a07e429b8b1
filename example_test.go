package mmapio_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hupe1980/mmapio"
)

// Example_source demonstrates zero-copy reading through a read-only mapping.
func Example_source() {
	path := filepath.Join(os.TempDir(), "mmapio_example_source")
	if err := os.WriteFile(path, []byte("Hello, mmap!"), 0o644); err != nil {
		log.Fatal(err)
	}
	defer os.Remove(path)

	src, err := mmapio.OpenSource(path)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	fmt.Println(string(src.Bytes()))
	// Output: Hello, mmap!
}

// Example_sink demonstrates writing through a mapping and flushing it to the
// backing file.
func Example_sink() {
	path := filepath.Join(os.TempDir(), "mmapio_example_sink")
	if err := os.WriteFile(path, make([]byte, 16), 0o644); err != nil {
		log.Fatal(err)
	}
	defer os.Remove(path)

	sink, err := mmapio.OpenSink(path)
	if err != nil {
		log.Fatal(err)
	}
	defer sink.Close()

	copy(sink.Bytes(), "written in place")
	if err := sink.Sync(); err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output: written in place
}

// ExampleShare demonstrates reference-counted sharing of one mapping.
func ExampleShare() {
	path := filepath.Join(os.TempDir(), "mmapio_example_share")
	if err := os.WriteFile(path, []byte("shared bytes"), 0o644); err != nil {
		log.Fatal(err)
	}
	defer os.Remove(path)

	src, err := mmapio.OpenSource(path)
	if err != nil {
		log.Fatal(err)
	}

	shared := mmapio.Share(src)
	clone := shared.Clone()

	shared.Close() // the clone keeps the mapping alive
	fmt.Println(string(clone.Bytes()))

	clone.Close() // last owner: the mapping is released
	fmt.Println(clone.IsOpen())
	// Output:
	// shared bytes
	// false
}
