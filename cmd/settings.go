// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cmd

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/penny-vault/ffactors/data"
	"github.com/penny-vault/ffactors/famafrench"
)

// settings mirrors the layout of ~/.ffactors.toml
type settings struct {
	DataDir           string `toml:"data_dir"`
	OutputDir         string `toml:"output_dir,omitempty"`
	Format            string `toml:"format"`
	Workers           int    `toml:"workers,omitempty"`
	ReferenceExchange string `toml:"reference_exchange"`

	Compare      compareSettings     `toml:"compare"`
	DB           dbSettings          `toml:"db"`
	Backblaze    backblazeSettings   `toml:"backblaze"`
	Healthchecks healthcheckSettings `toml:"healthchecks"`
}

type compareSettings struct {
	Start string `toml:"start"`
}

type dbSettings struct {
	URL string `toml:"url,omitempty"`
}

type backblazeSettings struct {
	ApplicationID  string `toml:"application_id,omitempty"`
	ApplicationKey string `toml:"application_key,omitempty"`
	Bucket         string `toml:"bucket,omitempty"`
}

type healthcheckSettings struct {
	PingURL string `toml:"ping_url,omitempty"`
}

func tableFormat() (data.Format, error) {
	return data.ParseFormat(viper.GetString("format"))
}

func dataDir() string {
	return viper.GetString("data_dir")
}

func outputDir() string {
	if dir := viper.GetString("output_dir"); dir != "" {
		return dir
	}
	return dataDir()
}

// pipelineConfig translates configuration values into the settings of the
// factor construction
func pipelineConfig() (famafrench.Config, error) {
	cfg := famafrench.DefaultConfig()

	if workers := viper.GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}

	exchange := strings.ToUpper(strings.TrimSpace(viper.GetString("reference_exchange")))
	switch exchange {
	case famafrench.ExchangeNYSE, famafrench.ExchangeAMEX, famafrench.ExchangeNASDAQ:
		cfg.ReferenceExchange = exchange
	default:
		return cfg, fmt.Errorf("reference exchange must be one of N, A or Q; got %q", exchange)
	}

	if asOf := viper.GetString("as_of"); asOf != "" {
		now, err := time.Parse(data.DateLayout, asOf)
		if err != nil {
			return cfg, fmt.Errorf("parse as-of date: %w", err)
		}
		cfg.Now = now
	}

	return cfg, nil
}

func compareStart() (time.Time, error) {
	return time.Parse(data.DateLayout, viper.GetString("compare.start"))
}

func uploadDir(manifest *data.Manifest) string {
	return path.Join("ff1993", manifest.StartTime.Format("2006-01-02"))
}
