package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sunsided/dcpu-16/cpu"
	"github.com/sunsided/dcpu-16/emulator"
)

func main() {
	var compile string
	var load string
	var dump bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".dasm file to assemble and run")
	flag.StringVar(&load, "l", "", "binary word file (little endian) to load and run")
	flag.BoolVar(&dump, "d", false, "Dump the program region before running")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	switch {
	case len(compile) != 0:
		source, err := os.ReadFile(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		err = emu.Assemble(string(source))
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(load) != 0:
		data, err := os.ReadFile(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		words := make([]cpu.Word, len(data)/2)
		for n := range words {
			words[n] = cpu.Word(binary.LittleEndian.Uint16(data[n*2:]))
		}
		err = emu.Load(words)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	default:
		log.Fatalf("%v: nothing to run; use -c or -l", os.Args[0])
	}

	if dump {
		fmt.Print(emu.HexdumpProgram(8))
	}

	emu.Run()

	fmt.Println(emu.Cpu)
}
