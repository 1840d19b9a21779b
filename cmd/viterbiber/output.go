package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-fec/fec/viterbi"
	"github.com/cwbudde/algo-fec/internal/store"
	"github.com/cwbudde/algo-fec/measure/ber"
)

func printBackends(w io.Writer) error {
	def := viterbi.DefaultBackend()
	for _, name := range viterbi.Backends() {
		marker := ""
		if name == def {
			marker = " (default)"
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", name, marker); err != nil {
			return err
		}
	}
	return nil
}

func printPoints(w io.Writer, points []ber.Point) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Eb/N0 [dB]\tFrames\tFrame Errors\tBits\tBit Errors\tBER\tFER\tUncoded BER\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----------\t------\t------------\t----\t----------\t---\t---\t-----------\n"); err != nil {
		return err
	}

	for _, p := range points {
		if _, err := fmt.Fprintf(tw, "%.2f\t%d\t%d\t%d\t%d\t%.3e\t%.3e\t%.3e\n",
			p.EbN0dB,
			p.Frames,
			p.FrameErrors,
			p.Bits,
			p.BitErrors,
			p.BER(),
			p.FER(),
			ber.UncodedBER(p.EbN0dB),
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printHistory(w io.Writer, runs []store.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Run\tStarted\tBackend\tPolys\tFrame Len\tTail Biting\tFrames\tEb/N0 [dB]\tBER\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "---\t-------\t-------\t-----\t---------\t-----------\t------\t----------\t---\n"); err != nil {
		return err
	}

	for _, r := range runs {
		for _, m := range r.Measurements {
			if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%t\t%d\t%.2f\t%.3e\n",
				r.ID,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Backend,
				r.Polys,
				r.FrameLen,
				r.TailBiting,
				m.Frames,
				m.EbN0dB,
				m.BER(),
			); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}
