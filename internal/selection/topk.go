// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

// Package selection implements the bounded top-K structure that keeps the
// brightest stars seen so far. Memory stays O(K) no matter how many rows the
// catalogue streams through, which is what makes parsing all of Gaia DR3
// feasible without sorting it.
package selection

import (
	"container/heap"
	"sort"

	"github.com/cosmoscout/gaia-stars/internal/catalog"
)

// ranked pairs a star with its encounter sequence number. The sequence makes
// boundary ties and the final ordering deterministic across runs on the same
// input ordering.
type ranked struct {
	star catalog.Star
	seq  uint64
}

// starHeap is a max-heap on (magnitude, sequence): the dimmest kept star is
// at the root, and among equal magnitudes the latest-seen one.
type starHeap []ranked

func (h starHeap) Len() int { return len(h) }

func (h starHeap) Less(i, j int) bool {
	if h[i].star.Mag != h[j].star.Mag {
		return h[i].star.Mag > h[j].star.Mag
	}
	return h[i].seq > h[j].seq
}

func (h starHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *starHeap) Push(x any) { *h = append(*h, x.(ranked)) }

func (h *starHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopK keeps the k stars with the smallest magnitude (the brightest) among
// all offered stars. It is owned by a single goroutine for the duration of
// one run and is not safe for concurrent use.
type TopK struct {
	limit int
	seq   uint64
	h     starHeap
}

// New creates a TopK keeping at most limit stars. The limit must be positive.
func New(limit int) *TopK {
	return &TopK{
		limit: limit,
		h:     make(starHeap, 0, limit),
	}
}

// Offer adds a candidate star and reports whether it was kept. Below
// capacity every candidate is kept. At capacity the dimmest kept star is
// replaced only when the candidate is strictly brighter, so the first-seen
// star wins a boundary tie.
func (t *TopK) Offer(s catalog.Star) bool {
	t.seq++

	if len(t.h) < t.limit {
		heap.Push(&t.h, ranked{star: s, seq: t.seq})
		return true
	}

	if s.Mag >= t.h[0].star.Mag {
		return false
	}

	t.h[0] = ranked{star: s, seq: t.seq}
	heap.Fix(&t.h, 0)
	return true
}

// Len returns the number of stars currently kept.
func (t *TopK) Len() int {
	return len(t.h)
}

// Drain empties the structure and returns the kept stars sorted brightest
// first, equal magnitudes in encounter order.
func (t *TopK) Drain() []catalog.Star {
	kept := t.h
	t.h = nil

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].star.Mag != kept[j].star.Mag {
			return kept[i].star.Mag < kept[j].star.Mag
		}
		return kept[i].seq < kept[j].seq
	})

	stars := make([]catalog.Star, len(kept))
	for i, r := range kept {
		stars[i] = r.star
	}
	return stars
}
