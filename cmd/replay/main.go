// Replay - runs the overlay pipeline over recorded detector output.
//
// Reads one JSON frame record per line (from REPLAY_INPUT or stdin) and
// writes one transform record per line to stdout. Stands in for the live
// orchestrator when tuning smoothing or adjustment parameters offline.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/overlaylabs/go-glasses/internal/config"
	"github.com/overlaylabs/go-glasses/internal/log"
	"github.com/overlaylabs/go-glasses/pkg/geometry"
	"github.com/overlaylabs/go-glasses/pkg/overlay"
	"github.com/overlaylabs/go-glasses/pkg/tracking"
)

// frameRecord is one recorded detector call.
type frameRecord struct {
	TimestampMs int64                `json:"timestamp_ms"`
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	Faces       [][]geometry.Point3D `json:"faces"`

	// Optional per-frame adjustment changes; nil leaves them untouched.
	Adjustments *overlay.Adjustments `json:"adjustments,omitempty"`
}

// transformRecord is one line of replay output.
type transformRecord struct {
	TimestampMs   int64                     `json:"timestamp_ms"`
	Visible       bool                      `json:"visible"`
	Confidence    float64                   `json:"confidence"`
	LowConfidence bool                      `json:"low_confidence"`
	Transform     *overlay.GlassesTransform `json:"transform,omitempty"`
}

func main() {
	log.Init(config.LogLevel())

	input := os.Stdin
	if path := config.ReplayInput(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Error("open replay input", "path", path, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	cfg := tracking.DefaultConfig()
	cfg.SmoothingFactor = config.SmoothingFactor(cfg.SmoothingFactor)
	session := tracking.NewSession(cfg)

	log.Info("replay started",
		"session", session.ID,
		"smoothing_factor", cfg.SmoothingFactor)

	frames, rendered, err := replay(session, input, os.Stdout)
	if err != nil {
		log.Error("replay failed", "error", err)
		os.Exit(1)
	}

	log.Info("replay finished", "frames", frames, "rendered", rendered)
}

// replay drives the session over every frame record in r, writing one
// transform record per frame to w. Returns the frame and rendered
// counts.
func replay(session *tracking.Session, r io.Reader, w io.Writer) (int, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24) // dense meshes make long lines

	out := bufio.NewWriter(w)
	defer out.Flush()
	enc := json.NewEncoder(out)

	frames := 0
	rendered := 0

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var frame frameRecord
		if err := json.Unmarshal(line, &frame); err != nil {
			return frames, rendered, fmt.Errorf("frame %d: decode: %w", frames+1, err)
		}
		frames++

		if frame.Adjustments != nil {
			session.SetAdjustments(*frame.Adjustments)
		}

		capturedAt := time.UnixMilli(frame.TimestampMs)
		output := session.ProcessFrame(frame.Faces, frame.Width, frame.Height, capturedAt)

		record := transformRecord{
			TimestampMs:   frame.TimestampMs,
			Visible:       output.Visible,
			Confidence:    output.Detection.Confidence,
			LowConfidence: output.Detection.LowConfidence,
		}
		if output.Visible {
			t := output.Transform
			record.Transform = &t
			rendered++
		}

		if err := enc.Encode(record); err != nil {
			return frames, rendered, fmt.Errorf("frame %d: encode: %w", frames, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return frames, rendered, fmt.Errorf("read input: %w", err)
	}

	return frames, rendered, nil
}
