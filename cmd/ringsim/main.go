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

// Command ringsim is the external driver spec.md keeps out of the core:
// it sets ring parameters, joins nodes, runs a workload, and prints the
// resulting load distribution. It consumes only ring's exported
// operations.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kolesnikov-labs/chordring"
	"github.com/kolesnikov-labs/chordring/config"
)

var cfgPath string

func main() {
	root := &cobra.Command{
		Use:   "ringsim",
		Short: "Simulate a Chord consistent-hashing ring",
		RunE:  run,
	}
	root.Flags().StringVar(&cfgPath, "config", "", "path to a YAML config file (defaults to environment variables)")
	root.Flags().Uint("m", 0, "identifier space exponent (overrides config)")
	root.Flags().Int("extents", 0, "declared extent universe (overrides config)")
	root.Flags().Int("replicas", -1, "replication factor (overrides config)")
	root.Flags().Int("nodes", 0, "number of nodes to join before the workload (overrides config)")
	root.Flags().Int("ops", 0, "number of workload operations (overrides config)")
	root.Flags().Int64("seed", 0, "random seed (overrides config)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	overrideFromFlags(cmd, &cfg)

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	r := ring.New(
		ring.WithM(cfg.M),
		ring.WithNumExtents(cfg.NumExtents),
		ring.WithReplicationFactor(cfg.ReplicationFactor),
		ring.WithRand(rng),
		ring.WithLogger(log),
	)

	for i := 0; i < cfg.Nodes; i++ {
		if _, err := r.JoinRandom(); err != nil {
			return fmt.Errorf("ringsim: join node %d: %w", i, err)
		}
	}

	counts, err := r.SimulateWorkload(cfg.WorkloadOps)
	if err != nil {
		return fmt.Errorf("ringsim: simulate workload: %w", err)
	}

	report, err := r.Report()
	if err != nil {
		return fmt.Errorf("ringsim: report: %w", err)
	}

	fmt.Println(r.String())
	fmt.Printf("operations served per node: %v\n", counts)
	fmt.Printf("load distribution: nodes=%d mean=%.2f stddev=%.2f p25=%.2f p99=%.2f\n",
		report.Nodes, report.Mean, report.StdDev, report.P25, report.P99)

	return nil
}

func overrideFromFlags(cmd *cobra.Command, cfg *config.Simulation) {
	if v, _ := cmd.Flags().GetUint("m"); v != 0 {
		cfg.M = v
	}
	if v, _ := cmd.Flags().GetInt("extents"); v != 0 {
		cfg.NumExtents = v
	}
	if v, _ := cmd.Flags().GetInt("replicas"); v >= 0 {
		cfg.ReplicationFactor = v
	}
	if v, _ := cmd.Flags().GetInt("nodes"); v != 0 {
		cfg.Nodes = v
	}
	if v, _ := cmd.Flags().GetInt("ops"); v != 0 {
		cfg.WorkloadOps = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v != 0 {
		cfg.Seed = v
	}
}
