// Package rulecache memoizes rule reports. Mining is a pure function of the
// trades and thresholds, so a report can be reused for as long as both stay
// the same.
package rulecache

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/franklinfx2/master-trader-sub000/rules"
	"github.com/franklinfx2/master-trader-sub000/trade"
)

// Fingerprint hashes the thresholds and the trades, in input order, into a
// hex key. Any edit to a trade or a threshold changes the key.
func Fingerprint(th rules.Thresholds, trades []trade.Record) (string, error) {
	d := xxhash.New()
	enc := json.NewEncoder(d)
	if err := enc.Encode(th); err != nil {
		return "", fmt.Errorf("fingerprint thresholds: %w", err)
	}
	for _, t := range trades {
		if err := enc.Encode(t); err != nil {
			return "", fmt.Errorf("fingerprint trade %s: %w", t.TradeID, err)
		}
	}
	return fmt.Sprintf("%016x", d.Sum64()), nil
}
