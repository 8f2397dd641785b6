/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"time"
)

// ItemKey addresses a single item for a point read.
type ItemKey struct {
	ID           string
	PartitionKey string
}

// ReadResult is the outcome of one point read within a batch.
type ReadResult struct {
	Key     ItemKey
	Item    RawItem
	Charge  float64
	Latency time.Duration
	Err     error
}

// OK reports whether the read succeeded.
func (r ReadResult) OK() bool {
	return r.Err == nil
}

// BatchReport aggregates per-item outcomes of a batch of point reads.
type BatchReport struct {
	Results     []ReadResult
	TotalCharge float64
}

// Succeeded returns the number of successful reads.
func (b BatchReport) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed reads.
func (b BatchReport) Failed() int {
	return len(b.Results) - b.Succeeded()
}

// ReadEach point-reads every key and collects a per-item result instead of
// stopping at the first failure: one missing item yields exactly one
// NotFoundError entry and the remaining reads still run. Context
// cancellation ends the batch early; keys not attempted are reported with
// the context error.
func (c *Container) ReadEach(ctx context.Context, keys []ItemKey) BatchReport {
	report := BatchReport{Results: make([]ReadResult, 0, len(keys))}

	if err := c.db.client.guard("ReadEach"); err != nil {
		for _, key := range keys {
			report.Results = append(report.Results, ReadResult{Key: key, Err: err})
		}
		return report
	}

	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			for _, remaining := range keys[i:] {
				report.Results = append(report.Results, ReadResult{Key: remaining, Err: err})
			}
			break
		}

		result := ReadResult{Key: key}
		raw, res, err := c.readRaw(ctx, key.ID, key.PartitionKey)
		if err != nil {
			result.Err = err
		} else {
			result.Item = raw
			result.Charge = res.Charge
			result.Latency = res.Latency
			report.TotalCharge += res.Charge
		}
		report.Results = append(report.Results, result)
	}

	return report
}
