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

// Package config assembles ring construction parameters from environment
// variables and an optional YAML file, for the cmd/ringsim driver. The
// ring library itself stays process-agnostic: config is the process-level
// layer that feeds ring.Option values to ring.New.
package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// Simulation holds every parameter the CLI driver needs to build a Ring
// and run a workload against it.
type Simulation struct {
	M                 uint   `yaml:"m" env:"RINGSIM_M" env-default:"32"`
	NumExtents        int    `yaml:"num_extents" env:"RINGSIM_NUM_EXTENTS" env-default:"4096"`
	ReplicationFactor int    `yaml:"replication_factor" env:"RINGSIM_REPLICATION_FACTOR" env-default:"2"`
	Nodes             int    `yaml:"nodes" env:"RINGSIM_NODES" env-default:"16"`
	WorkloadOps       int    `yaml:"workload_ops" env:"RINGSIM_WORKLOAD_OPS" env-default:"10000"`
	Seed              int64  `yaml:"seed" env:"RINGSIM_SEED" env-default:"1"`
	LogLevel          string `yaml:"log_level" env:"RINGSIM_LOG_LEVEL" env-default:"info"`
}

// Load reads a Simulation from the YAML file at path, then overlays any
// matching environment variables; a path that cannot be read is returned
// as an error. An empty path reads environment variables only.
func Load(path string) (Simulation, error) {
	var cfg Simulation

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Simulation{}, err
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Simulation{}, err
	}
	return cfg, nil
}
