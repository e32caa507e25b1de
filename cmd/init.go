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
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jackc/pgx/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/ffactors/data"
	"github.com/penny-vault/ffactors/db"
	"github.com/penny-vault/ffactors/famafrench"
	"github.com/penny-vault/ffactors/healthcheck"
)

// first of every month at 06:00
const healthcheckSchedule = "0 6 1 * *"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather settings and write the configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		conf := settings{
			DataDir:           dataDir(),
			Format:            string(data.FormatParquet),
			ReferenceExchange: famafrench.ExchangeNYSE,
			Compare:           compareSettings{Start: "1970-01-01"},
		}
		var healthchecksAPIKey string

		form := huh.NewForm(
			// Where the tables live
			huh.NewGroup(
				huh.NewInput().
					Title("Directory holding the input tables:").
					Value(&conf.DataDir).
					Validate(func(dir string) error {
						if strings.TrimSpace(dir) == "" {
							return errors.New("data directory is required")
						}
						return nil
					}),

				huh.NewInput().
					Title("Directory for the output tables (leave blank to use the data directory):").
					Value(&conf.OutputDir),

				huh.NewSelect[string]().
					Title("Table format:").
					Options(
						huh.NewOption("Parquet", string(data.FormatParquet)),
						huh.NewOption("CSV", string(data.FormatCSV)),
					).
					Value(&conf.Format),

				huh.NewSelect[string]().
					Title("Exchange used for breakpoints:").
					Options(
						huh.NewOption("NYSE", famafrench.ExchangeNYSE),
						huh.NewOption("AMEX", famafrench.ExchangeAMEX),
						huh.NewOption("NASDAQ", famafrench.ExchangeNASDAQ),
					).
					Value(&conf.ReferenceExchange),
			),

			// Optional factor library
			huh.NewGroup(
				huh.NewInput().
					Title("DSN of the PostgreSQL factor library, blank to skip (postgres://[user[:password]@][netloc][:port][/dbname][?param1=value1&...])").
					Value(&conf.DB.URL).
					Validate(func(dsn string) error {
						if dsn == "" {
							return nil
						}
						_, err := pgx.ParseConfig(dsn)
						return err
					}),
			),

			// Optional upload and monitoring
			huh.NewGroup(
				huh.NewInput().
					Title("Backblaze bucket to upload results to (blank to skip):").
					Value(&conf.Backblaze.Bucket),

				huh.NewInput().
					Title("Backblaze application ID:").
					Value(&conf.Backblaze.ApplicationID),

				huh.NewInput().
					Title("Backblaze application key:").
					EchoMode(huh.EchoModePassword).
					Value(&conf.Backblaze.ApplicationKey),

				huh.NewInput().
					Title("healthchecks.io API key (blank to skip):").
					EchoMode(huh.EchoModePassword).
					Value(&healthchecksAPIKey),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		if conf.DB.URL != "" {
			log.Info().Msg("creating database tables")
			if err := db.Migrate(conf.DB.URL); err != nil {
				log.Fatal().Err(err).Msg("error running database migration")
			}
			log.Info().Msg("database tables created")
		}

		if healthchecksAPIKey != "" {
			pingURL, err := healthcheck.Create(ctx, healthchecksAPIKey, healthcheck.CheckName(conf.DataDir), healthcheckSchedule)
			if err != nil {
				log.Fatal().Err(err).Msg("could not create healthchecks.io check")
			}
			conf.Healthchecks.PingURL = pingURL
		}

		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".ffactors.toml")
		log.Info().Str("ConfigFile", configFN).Msg("saving settings to config file")
		configData, err := toml.Marshal(conf)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		// the file may hold credentials
		err = os.WriteFile(configFN, configData, 0o600)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("ffactors has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
