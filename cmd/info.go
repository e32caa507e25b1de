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
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/penny-vault/ffactors/data"
	"github.com/penny-vault/ffactors/library"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the most recent run",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		manifest, err := data.LoadManifest(outputDir())
		if err != nil {
			log.Fatal().Err(err).Str("OutputDir", outputDir()).Msg("could not load run manifest")
		}

		summary := manifestMarkdown(manifest, time.Now())

		if dbURL := viper.GetString("db.url"); dbURL != "" {
			myLibrary, err := library.New(ctx, dbURL)
			if err != nil {
				log.Fatal().Err(err).Msg("could not connect to the factor library")
			}
			defer myLibrary.Close()

			librarySummary, err := myLibrary.Summary(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("could not create library summary document")
			}
			summary += "\n" + librarySummary
		}

		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)

		out, err := r.Render(summary)
		if err != nil {
			log.Fatal().Err(err).Msg("could not render summary document")
		}

		fmt.Print(out)
	},
}

func manifestMarkdown(manifest *data.Manifest, now time.Time) string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	ago := timeago.English
	ago.Max = 100 * 365 * 24 * time.Hour

	builder.WriteString("# Latest run\n\n")
	builder.WriteString(fmt.Sprintf("Run %s (version %s) finished %s\n\n", manifest.RunID, manifest.Version,
		ago.FormatReference(manifest.EndTime, now)))

	builder.WriteString(fmt.Sprintf("  * Months: %s - %s\n", manifest.FirstMonth, manifest.LastMonth))
	builder.WriteString(fmt.Sprintf("  * Exchanges: %s (breakpoints from %s)\n", strings.Join(manifest.Exchanges, ", "),
		manifest.ReferenceExchange))
	builder.WriteString(fmt.Sprintf("  * Format: %s\n\n", manifest.Format))

	builder.WriteString("| Stage | Rows |\n")
	builder.WriteString("| ----- | ---: |\n")
	stats := manifest.Stats
	for _, stage := range []struct {
		name string
		rows int
	}{
		{"Fundamentals", stats.NumFundamentals},
		{"Security months", stats.NumSecurityMonths},
		{"Universe", stats.NumUniverse},
		{"Firm months", stats.NumFirmMonths},
		{"June records", stats.NumJune},
		{"Linked", stats.NumLinked},
		{"Assigned", stats.NumAssigned},
		{"Portfolio months", stats.NumPortfolioRows},
		{"Factor months", stats.NumMonths},
	} {
		builder.WriteString(p.Sprintf("| %s | %d |\n", stage.name, stage.rows))
	}

	builder.WriteString("\n## Files\n\n")
	for _, fn := range manifest.Files {
		builder.WriteString(fmt.Sprintf("  * %s\n", fn))
	}

	return builder.String()
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
