// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package watcher

import (
	"context"
	"time"

	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/pool"
	"github.com/bitmark-inc/logger"
)

const (
	expiryInterval = 5 * time.Minute
	expiryPageSize = 100
)

// Expired - a funded pool past its deadline
type Expired struct {
	Id          uint64
	Name        string
	Distributor string
	Refundable  string
}

// Expiry - periodically look for pools to cancel
type Expiry struct {
	log      *logger.L
	ledger   ledger.Reader
	interval time.Duration
	clock    func() uint64

	// ids already reported, a pool is reported once
	reported map[uint64]struct{}
}

// NewExpiry - a watcher over l, zero interval selects the default
func NewExpiry(log *logger.L, l ledger.Reader, interval time.Duration) *Expiry {
	if interval <= 0 {
		interval = expiryInterval
	}
	return &Expiry{
		log:      log,
		ledger:   l,
		interval: interval,
		clock: func() uint64 {
			return uint64(time.Now().Unix())
		},
		reported: make(map[uint64]struct{}),
	}
}

// Run - background process
func (e *Expiry) Run(args interface{}, shutdown <-chan struct{}) {

	log := e.log

	log.Info("starting…")

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			_, err := e.Check(context.Background(), e.clock())
			if nil != err {
				log.Errorf("check error: %s", err)
			}
		}
	}

	log.Info("stopped")
}

// Check - scan every pool and return those newly found expired at now
func (e *Expiry) Check(ctx context.Context, now uint64) ([]Expired, error) {
	result := []Expired{}

	start := uint64(1)
	for {
		stored, err := e.ledger.Pools(ctx, start, expiryPageSize)
		if nil != err {
			return nil, err
		}
		if 0 == len(stored) {
			break
		}

		for _, s := range stored {
			start = s.Id + 1

			p := s.Pool
			if pool.Funded != p.Status || now <= p.Deadline {
				continue
			}
			refundable := p.Refundable()
			if refundable.IsZero() {
				continue
			}
			if _, ok := e.reported[s.Id]; ok {
				continue
			}
			e.reported[s.Id] = struct{}{}

			x := Expired{
				Id:          s.Id,
				Name:        p.Name,
				Distributor: p.Distributor.Hex(),
				Refundable:  refundable.Dec(),
			}
			e.log.Warnf("pool: %d  %q expired  distributor: %s  refundable: %s", x.Id, x.Name, x.Distributor, x.Refundable)
			result = append(result, x)
		}

		if len(stored) < expiryPageSize {
			break
		}
	}
	return result, nil
}
