/*
Copyright (C) 2013-2014 Regents of the University of Minnesota.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package oilspill

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
)

// gridDocument is the on-the-wire shape of a grid resource document
// (§6.1): ascending lat/lon axes, an optional time axis, an
// informational shape, and one or more named row-major variable
// arrays.
type gridDocument struct {
	Lat       []float64            `json:"lat"`
	Lon       []float64            `json:"lon"`
	TimeHours []float64            `json:"time_hours,omitempty"`
	Shape     []int                `json:"shape,omitempty"`
	Variables map[string][]float64 `json:"-"`
}

// UnmarshalJSON decodes the fixed axis keys plus an open set of
// variable arrays, since the variable name set is not fixed (§9 "grid
// variable naming").
func (g *gridDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Variables = make(map[string][]float64)
	for key, val := range raw {
		switch key {
		case "lat":
			if err := json.Unmarshal(val, &g.Lat); err != nil {
				return fmt.Errorf("oilspill: decoding lat axis: %w", err)
			}
		case "lon":
			if err := json.Unmarshal(val, &g.Lon); err != nil {
				return fmt.Errorf("oilspill: decoding lon axis: %w", err)
			}
		case "time_hours":
			if err := json.Unmarshal(val, &g.TimeHours); err != nil {
				return fmt.Errorf("oilspill: decoding time_hours axis: %w", err)
			}
		case "shape":
			if err := json.Unmarshal(val, &g.Shape); err != nil {
				return fmt.Errorf("oilspill: decoding shape: %w", err)
			}
		default:
			var arr []float64
			if err := json.Unmarshal(val, &arr); err != nil {
				continue // not a variable array; ignore unknown metadata
			}
			g.Variables[key] = arr
		}
	}
	return nil
}

// ParseGrid builds a FieldGrid from a decoded grid document, scrubbing
// NaNs to 0 (or, when isLandMask is set, to 1.0 in every variable,
// meaning "land")
// per §3.2. A malformed document (non-ascending axes, length mismatch)
// returns an error and no grid; the caller is expected to leave that
// resource slot empty and continue in scalar/partial-grid mode (§7).
func ParseGrid(doc gridDocument, isLandMask bool) (*FieldGrid, error) {
	var timeAxis []float64
	if len(doc.TimeHours) > 0 {
		timeAxis = doc.TimeHours
	}
	g, err := NewFieldGrid(doc.Lat, doc.Lon, timeAxis)
	if err != nil {
		return nil, err
	}
	for name, data := range doc.Variables {
		scrubbed := make([]float64, len(data))
		fill := 0.0
		if isLandMask {
			fill = 1.0
		}
		for i, v := range data {
			if math.IsNaN(v) {
				scrubbed[i] = fill
			} else {
				scrubbed[i] = v
			}
		}
		if err := g.AddVariable(name, scrubbed); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// LoadGridResource reads a grid document from a local file path or an
// http(s) URL. Remote fetches retry with exponential backoff via
// cenkalti/backoff, mirroring the resilience the teacher applies to
// its own web-archive data loader.
func LoadGridResource(ctx context.Context, location string, isLandMask bool) (*FieldGrid, error) {
	data, err := readGridResource(ctx, location)
	if err != nil {
		return nil, err
	}
	var doc gridDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("oilspill: decoding grid resource %q: %w", location, err)
	}
	return ParseGrid(doc, isLandMask)
}

func readGridResource(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return fetchWithRetry(ctx, location)
	}
	return os.ReadFile(location)
}

func fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("oilspill: fetching %q: server returned %s", url, resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("oilspill: fetching %q: %s", url, resp.Status))
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return body, nil
}
