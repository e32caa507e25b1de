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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/penny-vault/ffactors/backblaze"
	"github.com/penny-vault/ffactors/data"
	"github.com/penny-vault/ffactors/db"
	"github.com/penny-vault/ffactors/famafrench"
	"github.com/penny-vault/ffactors/healthcheck"
	"github.com/penny-vault/ffactors/library"
	"github.com/penny-vault/ffactors/pkginfo"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Construct the SMB and HML factors",
	Long: `The run sub-command loads the fundamentals, security month and link tables
from the data directory, constructs the six size/value portfolios and the SMB
and HML factors and writes the four output tables together with a run manifest
to the output directory.

When configured the results are also saved to the factor library database,
uploaded to Backblaze B2 and reported to healthchecks.io.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		pingURL := viper.GetString("healthchecks.ping_url")
		if pingURL != "" {
			if err := healthcheck.Start(ctx, pingURL); err != nil {
				log.Warn().Err(err).Msg("could not signal start to healthchecks.io")
			}
		}

		fail := func(err error, msg string) {
			if pingURL != "" {
				if pingErr := healthcheck.Ping(ctx, pingURL, false, err.Error()); pingErr != nil {
					log.Warn().Err(pingErr).Msg("could not report failure to healthchecks.io")
				}
			}
			log.Fatal().Err(err).Msg(msg)
		}

		manifest, out, err := constructFactors(ctx)
		if err != nil {
			fail(err, "factor construction failed")
		}

		if dbURL := viper.GetString("db.url"); dbURL != "" {
			if err := saveToLibrary(ctx, dbURL, manifest, out); err != nil {
				fail(err, "could not save run to the factor library")
			}
		}

		if bucket := viper.GetString("backblaze.bucket"); bucket != "" {
			creds := backblaze.Credentials{
				ApplicationID:  viper.GetString("backblaze.application_id"),
				ApplicationKey: viper.GetString("backblaze.application_key"),
			}
			if err := backblaze.Upload(ctx, creds, bucket, uploadDir(manifest), manifest.Files); err != nil {
				fail(err, "could not upload output tables to backblaze")
			}
		}

		runTime := durafmt.Parse(manifest.Duration()).LimitFirstN(2).String()
		log.Info().Str("RunID", manifest.RunID.String()).Str("RunTime", runTime).
			Int("NumMonths", manifest.Stats.NumMonths).Msg("factor construction complete")

		if pingURL != "" {
			p := message.NewPrinter(language.English)
			msg := p.Sprintf("%d months (%s - %s) in %s", manifest.Stats.NumMonths, manifest.FirstMonth, manifest.LastMonth, runTime)
			if err := healthcheck.Ping(ctx, pingURL, true, msg); err != nil {
				log.Warn().Err(err).Msg("could not report success to healthchecks.io")
			}
		}
	},
}

// constructFactors loads the inputs, runs the pipeline and writes every
// output table. The returned manifest lists the path of every written file,
// the saved copy only their base names.
func constructFactors(ctx context.Context) (*data.Manifest, *famafrench.Outputs, error) {
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, nil, err
	}

	format, err := tableFormat()
	if err != nil {
		return nil, nil, err
	}

	dir := outputDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("DataDir", dataDir()).Str("OutputDir", dir).Str("Format", string(format)).Logger()
	ctx = logger.WithContext(ctx)

	manifest := data.NewManifest(pkginfo.CurrentVersion(), format, cfg)

	inputs, err := data.LoadInputs(ctx, dataDir(), format)
	if err != nil {
		return nil, nil, fmt.Errorf("load inputs: %w", err)
	}

	out, err := famafrench.Run(ctx, cfg, inputs)
	if err != nil {
		return nil, nil, err
	}

	files, err := data.SaveOutputs(ctx, dir, format, out)
	if err != nil {
		return nil, nil, err
	}

	manifest.Finish(out, files)
	manifestFn, err := manifest.Save(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("save manifest: %w", err)
	}

	manifest.Files = append(files, manifestFn)

	return manifest, out, nil
}

func saveToLibrary(ctx context.Context, dbURL string, manifest *data.Manifest, out *famafrench.Outputs) error {
	if err := db.Migrate(dbURL); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	myLibrary, err := library.New(saveCtx, dbURL)
	if err != nil {
		return err
	}
	defer myLibrary.Close()

	return myLibrary.SaveRun(saveCtx, library.NewRun(manifest), out)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("workers", 0, "number of concurrent workers (default is the number of CPUs)")
	runCmd.Flags().String("reference-exchange", "N", "exchange the breakpoints are computed from")
	runCmd.Flags().String("as-of", "", "date open-ended links are closed at, YYYY-MM-DD (default is today)")

	for key, flag := range map[string]string{
		"workers":            "workers",
		"reference_exchange": "reference-exchange",
		"as_of":              "as-of",
	} {
		if err := viper.BindPFlag(key, runCmd.Flags().Lookup(flag)); err != nil {
			log.Panic().Err(err).Str("Flag", flag).Msg("BindPFlag failed")
		}
	}
}
