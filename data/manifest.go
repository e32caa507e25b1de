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
package data

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/penny-vault/ffactors/famafrench"
)

// Manifest describes a single pipeline run and is stored next to its output
// tables
type Manifest struct {
	RunID     uuid.UUID `json:"run_id"`
	Version   string    `json:"version"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Format            Format   `json:"format"`
	Exchanges         []string `json:"exchanges"`
	ReferenceExchange string   `json:"reference_exchange"`
	Now               string   `json:"now"`

	FirstMonth string              `json:"first_month,omitempty"`
	LastMonth  string              `json:"last_month,omitempty"`
	Stats      famafrench.RunStats `json:"stats"`
	Files      []string            `json:"files"`
}

func NewManifest(version string, format Format, cfg famafrench.Config) *Manifest {
	return &Manifest{
		RunID:             uuid.New(),
		Version:           version,
		StartTime:         time.Now().UTC(),
		Format:            format,
		Exchanges:         cfg.Exchanges,
		ReferenceExchange: cfg.ReferenceExchange,
		Now:               cfg.Now.Format(DateLayout),
	}
}

// Finish records the results of a completed run
func (m *Manifest) Finish(out *famafrench.Outputs, files []string) {
	m.EndTime = time.Now().UTC()
	m.Stats = out.Stats
	m.Files = make([]string, len(files))
	for idx, fn := range files {
		m.Files[idx] = filepath.Base(fn)
	}

	if len(out.Factors) > 0 {
		m.FirstMonth = out.Factors[0].Date.Format(DateLayout)
		m.LastMonth = out.Factors[len(out.Factors)-1].Date.Format(DateLayout)
	}
}

func (m *Manifest) Duration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}

// Save writes the manifest to dir and returns its path
func (m *Manifest) Save(dir string) (string, error) {
	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}

	fn := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(fn, buf, 0o644); err != nil {
		return "", err
	}

	return fn, nil
}

func LoadManifest(dir string) (*Manifest, error) {
	buf, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	if err := json.Unmarshal(buf, m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ManifestFile, err)
	}

	return m, nil
}
