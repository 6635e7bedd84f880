// Package reorder: post-run snapshot dumps.
//
// For offline inspection the pass can emit its decisions in two shapes:
// a gob stream behind an s2 compressor (compact, machine-readable) and a
// YAML document (human-readable). Both carry the same snapshot.

package reorder

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
	"gopkg.in/yaml.v3"
)

// snapshot is the serialized form of a Result.
type snapshot struct {
	Formats  map[string]string `yaml:"formats"`
	Inserted []string          `yaml:"inserted"`
	Stats    *Stats            `yaml:"stats,omitempty"`
}

// newSnapshot renders formats to their canonical tags so both encodings
// stay readable and stable across releases.
func newSnapshot(res *Result) snapshot {
	snap := snapshot{
		Formats:  make(map[string]string, len(res.Formats)),
		Inserted: res.Inserted,
		Stats:    res.Stats,
	}
	for id, f := range res.Formats {
		snap.Formats[id] = f.String()
	}

	return snap
}

// writeTraces emits the snapshot to whichever trace writers are set.
func (p *pass) writeTraces(res *Result) error {
	if p.opts.Trace == nil && p.opts.TraceYAML == nil {
		return nil
	}
	snap := newSnapshot(res)

	if p.opts.Trace != nil {
		// Close the s2 writer before returning so the stream carries
		// complete information.
		w := s2.NewWriter(p.opts.Trace)
		if err := gob.NewEncoder(w).Encode(snap); err != nil {
			_ = w.Close()

			return fmt.Errorf("reorder: trace encode: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("reorder: trace flush: %w", err)
		}
	}

	if p.opts.TraceYAML != nil {
		doc, err := yaml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("reorder: trace marshal: %w", err)
		}
		if _, err := p.opts.TraceYAML.Write(doc); err != nil {
			return fmt.Errorf("reorder: trace write: %w", err)
		}
	}

	return nil
}

// ReadTrace decodes a snapshot previously written through WithTrace.
// Exposed so tooling (and tests) can round-trip the binary stream.
func ReadTrace(r io.Reader) (map[string]string, []string, *Stats, error) {
	var snap snapshot
	if err := gob.NewDecoder(s2.NewReader(r)).Decode(&snap); err != nil {
		return nil, nil, nil, fmt.Errorf("reorder: trace decode: %w", err)
	}

	return snap.Formats, snap.Inserted, snap.Stats, nil
}
