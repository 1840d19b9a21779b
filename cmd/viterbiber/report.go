package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-fec/internal/store"
	"github.com/cwbudde/algo-fec/measure/ber"
)

// report is the YAML document written after a sweep.
type report struct {
	Generated  time.Time     `yaml:"generated"`
	Elapsed    string        `yaml:"elapsed"`
	Backend    string        `yaml:"backend"`
	Polys      string        `yaml:"polys"`
	FrameLen   int           `yaml:"frame_len"`
	Frames     int           `yaml:"frames"`
	TailBiting bool          `yaml:"tail_biting"`
	Seed       uint64        `yaml:"seed"`
	Points     []reportPoint `yaml:"points"`

	elapsed time.Duration
}

type reportPoint struct {
	EbN0dB      float64 `yaml:"ebn0_db"`
	Frames      int     `yaml:"frames"`
	FrameErrors int     `yaml:"frame_errors"`
	Bits        int     `yaml:"bits"`
	BitErrors   int     `yaml:"bit_errors"`
	BER         float64 `yaml:"ber"`
	FER         float64 `yaml:"fer"`
	UncodedBER  float64 `yaml:"uncoded_ber"`
}

func newReport(cfg *Config, backend string, started time.Time, elapsed time.Duration, points []ber.Point) *report {
	rep := &report{
		Generated:  started.UTC().Truncate(time.Second),
		Elapsed:    elapsed.Round(time.Millisecond).String(),
		Backend:    backend,
		Polys:      normalizePolys(cfg.Polys),
		FrameLen:   cfg.FrameLen,
		Frames:     cfg.Frames,
		TailBiting: cfg.TailBiting,
		Seed:       cfg.Seed,
		elapsed:    elapsed,
	}

	for _, p := range points {
		rep.Points = append(rep.Points, reportPoint{
			EbN0dB:      p.EbN0dB,
			Frames:      p.Frames,
			FrameErrors: p.FrameErrors,
			Bits:        p.Bits,
			BitErrors:   p.BitErrors,
			BER:         p.BER(),
			FER:         p.FER(),
			UncodedBER:  ber.UncodedBER(p.EbN0dB),
		})
	}

	return rep
}

// toRun converts the report into a store record.
func (r *report) toRun() *store.Run {
	run := &store.Run{
		Backend:    r.Backend,
		Polys:      r.Polys,
		FrameLen:   r.FrameLen,
		Frames:     r.Frames,
		TailBiting: r.TailBiting,
		Seed:       int64(r.Seed),
		StartedAt:  r.Generated,
		Duration:   r.elapsed.Seconds(),
	}

	for _, p := range r.Points {
		run.Measurements = append(run.Measurements, store.Measurement{
			EbN0dB:      p.EbN0dB,
			Frames:      p.Frames,
			FrameErrors: p.FrameErrors,
			Bits:        p.Bits,
			BitErrors:   p.BitErrors,
		})
	}

	return run
}

// writeReport expands the strftime pattern with t and writes rep there.
func writeReport(pattern string, t time.Time, rep *report) (string, error) {
	path, err := strftime.Format(pattern, t)
	if err != nil {
		return "", fmt.Errorf("report path %q: %w", pattern, err)
	}

	data, err := yaml.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}

func normalizePolys(s string) string {
	fields := strings.Split(s, ",")
	for i, f := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return strings.Join(fields, ",")
}
