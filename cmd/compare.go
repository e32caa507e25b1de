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
	"math"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/ffactors/compare"
	"github.com/penny-vault/ffactors/data"
	"github.com/penny-vault/ffactors/famafrench"
	"github.com/penny-vault/ffactors/library"
)

// correlation both factors must reach for the reconstruction to be considered
// faithful
const trackingThreshold = 0.95

var (
	referenceFn string
	factorsFn   string
	runID       string
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4672"))
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the constructed factors with the published series",
	Long: `Join the constructed SMB and HML factors with a reference series on month
and report the correlation and absolute differences of both factors. The
constructed factors are read from the output directory or, when --run is
given, from the factor library.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		format, err := tableFormat()
		if err != nil {
			log.Fatal().Err(err).Msg("invalid table format")
		}

		start, err := compareStart()
		if err != nil {
			log.Fatal().Err(err).Str("Start", viper.GetString("compare.start")).Msg("invalid compare start date")
		}

		if referenceFn == "" {
			referenceFn = data.TablePath(dataDir(), data.ReferenceFactorsTable, format)
		}

		reference, err := data.LoadReferenceFactors(ctx, referenceFn, format)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", referenceFn).Msg("could not load reference factors")
		}

		computed, err := computedFactors(ctx, format)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load constructed factors")
		}

		res, err := compare.Compare(computed, reference, start)
		if err != nil {
			log.Fatal().Err(err).Msg("comparison failed")
		}

		r, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)

		out, err := r.Render(res.Report())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render comparison report")
		}

		fmt.Print(out)
		fmt.Println(verdict(res))
	},
}

func computedFactors(ctx context.Context, format data.Format) ([]famafrench.Factor, error) {
	if runID == "" {
		if factorsFn == "" {
			factorsFn = data.TablePath(outputDir(), data.FactorsTable, format)
		}
		return data.LoadFactors(ctx, factorsFn, format)
	}

	myLibrary, err := library.New(ctx, viper.GetString("db.url"))
	if err != nil {
		return nil, err
	}
	defer myLibrary.Close()

	var run *library.Run
	if runID == "latest" {
		run, err = myLibrary.LatestRun(ctx)
	} else {
		run, err = myLibrary.RunFromID(ctx, runID)
	}
	if err != nil {
		return nil, err
	}

	return myLibrary.Factors(ctx, run)
}

func verdict(res *compare.Result) string {
	passed := func(tracking compare.Tracking) bool {
		return !math.IsNaN(tracking.Correlation) && tracking.Correlation >= trackingThreshold
	}

	if passed(res.SMB) && passed(res.HML) {
		return passStyle.Render(fmt.Sprintf("  ✔ both factors track the reference (correlation >= %.2f)", trackingThreshold))
	}

	return failStyle.Render(fmt.Sprintf("  ✘ factors diverge from the reference (correlation < %.2f)", trackingThreshold))
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&referenceFn, "reference", "", "reference factor table (default is FF_FACTORS in the data directory)")
	compareCmd.Flags().StringVar(&factorsFn, "factors", "", "constructed factor table (default is FF_1993_factors in the output directory)")
	compareCmd.Flags().StringVar(&runID, "run", "", "compare a run saved in the factor library (id prefix or \"latest\") instead of a table")
	compareCmd.Flags().String("start", "1970-01-01", "first month compared, YYYY-MM-DD")

	if err := viper.BindPFlag("compare.start", compareCmd.Flags().Lookup("start")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag failed")
	}
}
