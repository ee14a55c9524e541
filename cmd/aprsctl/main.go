/*
NAME
  main.go

DESCRIPTION
  main.go is the aprsctl CLI entry point, exposing the codec's three
  optional subcommands named in spec.md §6: encode, decode, and
  modulate, plus an analyze debug subcommand exercising
  codec/afsk.PlotEnergies. Flag parsing follows doismellburning-samoyed's
  use of github.com/spf13/pflag for a direwolf-style command's flags.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/kc5afs/aprsafsk/codec/afsk"
	"github.com/kc5afs/aprsafsk/codec/aprs"
	"github.com/kc5afs/aprsafsk/container/wav"
	"github.com/kc5afs/aprsafsk/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	log := logging.New(logging.LevelFromString("info"))

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(log, os.Args[2:])
	case "decode":
		err = runDecode(log, os.Args[2:])
	case "modulate":
		err = runModulate(log, os.Args[2:])
	case "analyze":
		err = runAnalyze(log, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error("aprsctl failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: aprsctl <encode|decode|modulate|analyze> [flags] <args...>")
}

// runEncode implements `aprsctl encode <message> <output>`: builds a
// packet from message and the --source/--destination/--digipeater
// flags, encodes it, and writes the resulting WAV file to output.
func runEncode(log *slog.Logger, args []string) error {
	fs := pflag.NewFlagSet("encode", pflag.ExitOnError)
	source := fs.StringP("source", "s", "N0CALL", "source callsign[-SSID]")
	dest := fs.StringP("destination", "d", "APRS", "destination callsign[-SSID]")
	digis := fs.StringSliceP("digipeater", "r", nil, "digipeater callsign[-SSID], repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("encode requires <message> <output>")
	}
	message, output := fs.Arg(0), fs.Arg(1)

	p := aprs.NewPacket(*source, *dest, *digis, []byte(message))
	samples, err := aprs.Encode(p, afsk.Bell202())
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	body, err := wav.Encode(samples)
	if err != nil {
		return fmt.Errorf("encode: could not build WAV: %w", err)
	}
	if err := os.WriteFile(output, body, 0o644); err != nil {
		return fmt.Errorf("encode: could not write %s: %w", output, err)
	}
	log.Info("encoded", "output", output, "samples", len(samples))
	return nil
}

// runDecode implements `aprsctl decode <input> <output>`: reads a WAV
// file, decodes the first AX.25 UI-frame, and writes the recovered
// information bytes to output while logging the routing fields.
func runDecode(log *slog.Logger, args []string) error {
	fs := pflag.NewFlagSet("decode", pflag.ExitOnError)
	filtered := fs.Bool("filter", false, "apply a band-pass pre-filter before demodulating")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("decode requires <input> <output>")
	}
	input, output := fs.Arg(0), fs.Arg(1)

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("decode: could not read %s: %w", input, err)
	}

	var samples []int16
	if *filtered {
		samples, err = wav.DecodeFiltered(raw)
	} else {
		samples, err = wav.Decode(raw)
	}
	if err != nil {
		return fmt.Errorf("decode: could not parse WAV: %w", err)
	}

	p, err := aprs.Decode(samples, afsk.Bell202())
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if err := os.WriteFile(output, p.Information, 0o644); err != nil {
		return fmt.Errorf("decode: could not write %s: %w", output, err)
	}
	log.Info("decoded", "source", p.Source, "destination", p.Destination, "digipeaters", p.Digipeaters, "output", output)
	return nil
}

// runModulate implements `aprsctl modulate <in> <out>`: modulates the
// raw bytes of an already-assembled AX.25 frame directly, bypassing
// the fragmenter/assembler, for testing hand-built frames.
func runModulate(log *slog.Logger, args []string) error {
	fs := pflag.NewFlagSet("modulate", pflag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("modulate requires <in> <out>")
	}
	input, output := fs.Arg(0), fs.Arg(1)

	frame, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("modulate: could not read %s: %w", input, err)
	}

	samples := afsk.NewModulator(afsk.Bell202()).Modulate(frame)
	body, err := wav.Encode(samples)
	if err != nil {
		return fmt.Errorf("modulate: could not build WAV: %w", err)
	}
	if err := os.WriteFile(output, body, 0o644); err != nil {
		return fmt.Errorf("modulate: could not write %s: %w", output, err)
	}
	log.Info("modulated", "output", output, "samples", len(samples))
	return nil
}

// runAnalyze renders the per-symbol MARK/SPACE energy of a WAV file to
// a PNG for diagnosing a marginal decode.
func runAnalyze(log *slog.Logger, args []string) error {
	fs := pflag.NewFlagSet("analyze", pflag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("analyze requires <input> <output.png>")
	}
	input, output := fs.Arg(0), fs.Arg(1)

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("analyze: could not read %s: %w", input, err)
	}
	samples, err := wav.Decode(raw)
	if err != nil {
		return fmt.Errorf("analyze: could not parse WAV: %w", err)
	}

	demod := afsk.NewDemodulator(afsk.Bell202())
	energies := demod.Energies(samples)
	if err := afsk.PlotEnergies(energies, output); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.Info("analyzed", "symbols", len(energies), "output", output)
	return nil
}
