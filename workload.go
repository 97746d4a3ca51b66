/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package ring

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// SimulateWorkload drives num_ops synthetic writes across the declared
// extent universe and returns, for every node that served at least one
// of them, the count of times it was chosen as primary or replica.
func (r *Ring) SimulateWorkload(numOps int) (map[uint64]uint64, error) {
	if r.idx.size() == 0 {
		return nil, errEmpty("SimulateWorkload")
	}
	if r.numExtents <= 0 {
		return nil, fmt.Errorf("ring.SimulateWorkload: num_extents must be positive, got %d", r.numExtents)
	}

	counts := map[uint64]uint64{}

	for i := 1; i <= numOps; i++ {
		key := fmt.Sprintf("extent%d", i%r.numExtents)
		value := fmt.Sprintf("data%d", i)

		primary, replicas, err := computePlacement(r.idx, r.hasher, r.replicas, key)
		if err != nil {
			return nil, err
		}

		primary.put(key, value)
		counts[primary.id]++
		for _, rep := range replicas {
			rep.put(key, value)
			counts[rep.id]++
		}
	}

	r.log.WithFields(map[string]interface{}{"ops": numOps, "nodes": len(counts)}).Debug("workload simulated")
	return counts, nil
}

// LoadDistribution returns, for each node, the number of extents it
// currently holds.
func (r *Ring) LoadDistribution() map[uint64]int {
	out := map[uint64]int{}
	for _, n := range r.idx.nodes() {
		out[n.id] = n.Size()
	}
	return out
}

// WorkloadReport summarises the spread of a load distribution: the mean,
// standard deviation, and 25th/99th percentile of per-node load, computed
// the same way the teacher library's own allocation analysis does.
type WorkloadReport struct {
	Nodes      int
	Mean       float64
	StdDev     float64
	P25        float64
	P99        float64
}

// Report computes a WorkloadReport over the current load distribution.
func (r *Ring) Report() (WorkloadReport, error) {
	dist := r.LoadDistribution()
	if len(dist) == 0 {
		return WorkloadReport{}, errEmpty("Report")
	}

	samples := make([]float64, 0, len(dist))
	for _, v := range dist {
		samples = append(samples, float64(v))
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return WorkloadReport{}, fmt.Errorf("ring.Report: mean: %w", err)
	}
	sd, err := stats.StandardDeviation(samples)
	if err != nil {
		return WorkloadReport{}, fmt.Errorf("ring.Report: stddev: %w", err)
	}
	p25, err := stats.Percentile(samples, 25.0)
	if err != nil {
		return WorkloadReport{}, fmt.Errorf("ring.Report: p25: %w", err)
	}
	p99, err := stats.Percentile(samples, 99.0)
	if err != nil {
		return WorkloadReport{}, fmt.Errorf("ring.Report: p99: %w", err)
	}

	return WorkloadReport{
		Nodes:  len(dist),
		Mean:   mean,
		StdDev: sd,
		P25:    p25,
		P99:    p99,
	}, nil
}
