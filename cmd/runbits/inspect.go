package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/codec"
)

type inspectReport struct {
	Name        string  `json:"name"`
	Framed      bool    `json:"framed"`
	Compression string  `json:"compression"`
	StoredBytes int     `json:"stored_bytes"`
	RawBytes    int     `json:"raw_bytes"`
	TotalBits   uint64  `json:"total_bits"`
	Runs        int     `json:"runs"`
	SetBits     uint64  `json:"set_bits"`
	Density     float64 `json:"density"`
	Fingerprint string  `json:"fingerprint"`
}

func newInspectCmd(r *rootT) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <bitsets>",
		Short: "print the encoding and statistics of stored bitsets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				rep, err := r.inspect(cmd, name)
				if err != nil {
					return err
				}
				if err := printReport(cmd, rep, asJSON); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per bitset")
	return cmd
}

func (r *rootT) inspect(cmd *cobra.Command, name string) (inspectReport, error) {
	data, err := r.readRaw(cmd.Context(), name)
	if err != nil {
		return inspectReport{}, err
	}

	rep := inspectReport{Name: name, StoredBytes: len(data), Compression: "raw"}
	payload := data
	if codec.IsFrame(data) {
		var h codec.Header
		if payload, h, err = codec.Unwrap(data); err != nil {
			return rep, fmt.Errorf("%s: %w", name, err)
		}
		rep.Framed = true
		rep.Compression = h.Compression.String()
	}
	rep.RawBytes = len(payload)

	bs, err := runbits.FromBytes(payload)
	if err != nil {
		return rep, fmt.Errorf("%s: %w", name, err)
	}
	rep.TotalBits = bs.TotalBits()
	rep.Runs = bs.RunCount()
	rep.SetBits = bs.Count(true)
	rep.Density = bs.Density()
	rep.Fingerprint = fmt.Sprintf("%016x", bs.Fingerprint())
	return rep, nil
}

func printReport(cmd *cobra.Command, rep inspectReport, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.Marshal(rep)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}

	format := "raw"
	if rep.Framed {
		format = fmt.Sprintf("frame v%d", codec.Version)
	}
	fmt.Fprintf(out, "%s\n", rep.Name)
	fmt.Fprintf(out, "  format       %s\n", format)
	fmt.Fprintf(out, "  compression  %s\n", rep.Compression)
	fmt.Fprintf(out, "  bytes        %d stored, %d raw\n", rep.StoredBytes, rep.RawBytes)
	fmt.Fprintf(out, "  total bits   %d\n", rep.TotalBits)
	fmt.Fprintf(out, "  runs         %d\n", rep.Runs)
	fmt.Fprintf(out, "  set bits     %d\n", rep.SetBits)
	fmt.Fprintf(out, "  density      %.4f\n", rep.Density)
	fmt.Fprintf(out, "  fingerprint  %s\n", rep.Fingerprint)
	return nil
}
