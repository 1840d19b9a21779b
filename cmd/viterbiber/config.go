package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-fec/fec/viterbi"
	"github.com/cwbudde/algo-fec/measure/ber"
)

const envPrefix = "ALGOFEC"

// Config holds the sweep settings after flags, file and environment have
// been merged.
type Config struct {
	Polys      string `mapstructure:"polys"`
	FrameLen   int    `mapstructure:"frame_len"`
	Frames     int    `mapstructure:"frames"`
	EbN0       string `mapstructure:"ebn0"`
	TailBiting bool   `mapstructure:"tail_biting"`
	Backend    string `mapstructure:"backend"`
	Seed       uint64 `mapstructure:"seed"`
	Report     string `mapstructure:"report"`
	DB         string `mapstructure:"db"`
	History    int    `mapstructure:"history"`
	LogLevel   string `mapstructure:"log_level"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"polys":       "polys",
	"frame-len":   "frame_len",
	"frames":      "frames",
	"ebn0":        "ebn0",
	"tail-biting": "tail_biting",
	"backend":     "backend",
	"seed":        "seed",
	"report":      "report",
	"db":          "db",
	"history":     "history",
	"log-level":   "log_level",
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("viterbiber", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringP("config", "c", "", "YAML config file")
	fs.String("polys", "0x6d,0x4f,0x57", "generator polynomials, comma separated; a leading '-' inverts an output")
	fs.IntP("frame-len", "n", 40, "information bits per frame")
	fs.IntP("frames", "f", 1000, "frames per Eb/N0 point")
	fs.StringP("ebn0", "e", "0:1:6", "Eb/N0 points in dB: start:step:stop or a comma separated list")
	fs.BoolP("tail-biting", "t", false, "tail-biting frames instead of zero-tail")
	fs.StringP("backend", "b", "", "decoder kernel (see --list-backends); empty picks the fastest")
	fs.Uint64("seed", 1, "noise generator seed")
	fs.StringP("report", "r", "viterbiber-%Y%m%d-%H%M%S.yaml", "YAML report path, strftime pattern; empty disables")
	fs.String("db", "", "SQLite database to store the run in")
	fs.Int("history", 0, "print the last N stored runs from --db and exit")
	fs.StringP("log-level", "l", "info", "log level: debug, info, warn, error")
	fs.Bool("list-backends", false, "list decoder kernels and exit")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: viterbiber [flags]\n\n")
		_, _ = fmt.Fprintf(stderr, "Measures BER and FER of the K=7 rate 1/3 Viterbi decoder over AWGN.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(stderr, "\nEnvironment variables %s_<KEY> override the config file, e.g. %s_FRAME_LEN.\n", envPrefix, envPrefix)
		_, _ = fmt.Fprintf(stderr, "\nExamples:\n")
		_, _ = fmt.Fprintf(stderr, "  viterbiber --ebn0 0:0.5:4 --frames 2000\n")
		_, _ = fmt.Fprintf(stderr, "  viterbiber --tail-biting --backend generic\n")
		_, _ = fmt.Fprintf(stderr, "  viterbiber --db runs.db --history 10\n")
	}

	return fs
}

// loadConfig merges flag defaults, the optional config file, the
// environment and explicitly set flags.
func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return nil, fmt.Errorf("config file %s not found", path)
			}
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings that do not need a decoder to verify.
func (c *Config) Validate() error {
	if c.History < 0 {
		return errors.New("history must not be negative")
	}

	if c.History > 0 {
		return nil
	}

	if _, err := parsePolys(c.Polys); err != nil {
		return err
	}

	if _, err := parseEbN0(c.EbN0); err != nil {
		return err
	}

	if c.FrameLen <= viterbi.K+1 {
		return fmt.Errorf("frame_len must be greater than %d", viterbi.K+1)
	}

	if c.Frames <= 0 {
		return errors.New("frames must be positive")
	}

	return nil
}

func (c *Config) berConfig() (ber.Config, error) {
	polys, err := parsePolys(c.Polys)
	if err != nil {
		return ber.Config{}, err
	}

	points, err := parseEbN0(c.EbN0)
	if err != nil {
		return ber.Config{}, err
	}

	return ber.Config{
		Polys:      polys,
		FrameLen:   c.FrameLen,
		Frames:     c.Frames,
		EbN0dB:     points,
		TailBiting: c.TailBiting,
		Seed:       c.Seed,
		Backend:    c.Backend,
	}, nil
}

// parsePolys reads three comma separated polynomials in any base
// strconv accepts ("0x6d", "0o155", "109").
func parsePolys(s string) ([viterbi.Rate]int, error) {
	var polys [viterbi.Rate]int

	fields := strings.Split(s, ",")
	if len(fields) != viterbi.Rate {
		return polys, fmt.Errorf("polys: want %d polynomials, got %d", viterbi.Rate, len(fields))
	}

	for i, f := range fields {
		p, err := strconv.ParseInt(strings.TrimSpace(f), 0, 32)
		if err != nil {
			return polys, fmt.Errorf("polys: %w", err)
		}
		polys[i] = int(p)
	}

	if _, err := viterbi.NewCode(polys); err != nil {
		return polys, err
	}

	return polys, nil
}

// maxPoints bounds a start:step:stop range.
const maxPoints = 1000

// parseEbN0 reads either start:step:stop (inclusive) or a comma
// separated list of Eb/N0 values in dB.
func parseEbN0(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("ebn0: no points")
	}

	if parts := strings.Split(s, ":"); len(parts) > 1 {
		if len(parts) != 3 {
			return nil, fmt.Errorf("ebn0: range %q must be start:step:stop", s)
		}

		var r [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("ebn0: %w", err)
			}
			r[i] = v
		}

		start, step, stop := r[0], r[1], r[2]
		if step <= 0 || stop < start {
			return nil, fmt.Errorf("ebn0: range %q must have step > 0 and stop >= start", s)
		}

		n := int(math.Floor((stop-start)/step+1e-9)) + 1
		if n > maxPoints {
			return nil, fmt.Errorf("ebn0: range %q has more than %d points", s, maxPoints)
		}

		points := make([]float64, n)
		for i := range points {
			points[i] = start + float64(i)*step
		}
		return points, nil
	}

	var points []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("ebn0: %w", err)
		}
		points = append(points, v)
	}
	return points, nil
}
