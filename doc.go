// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package striad measures sustained memory bandwidth with the STREAM triad
// a[i] = b[i] + d[i]*c[i] over large float64 arrays.
//
// Three execution strategies are provided:
//   - Sequential: a single goroutine sweeps the whole range.
//   - Throughput: every worker repeats the full problem into a private
//     buffer, measuring aggregate per-core bandwidth without sharing.
//   - Worksharing: the index range is partitioned across the workers,
//     measuring how one shared result array scales.
//
// The number of workers is the runtime's GOMAXPROCS. Run calibrates an
// iteration count long enough to amortize timer resolution, times a fixed
// number of trials, discards the first as a warm-up and reports the data
// volume in kB together with the achieved MFLOP/s.
//
// Example usage:
//
//	cfg := striad.DefaultConfig()
//	cfg.Type = striad.Worksharing
//	cfg.N = 20_000_000
//	res, err := striad.Run(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res) // "640000.00 12345.67"
package striad
