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
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ffactors",
	Short: "ffactors rebuilds the Fama-French (1993) SMB and HML factors",
	Long: `ffactors is a command line utility that reconstructs the Fama-French
(1993) size (SMB) and value (HML) factors from a monthly security panel, an
annual fundamentals panel and a link table between the two.

Each June securities are sorted into two size groups by the median market
equity of NYSE stocks and three book-to-market groups by the 30th and 70th
NYSE percentiles. The six resulting portfolios are value weighted and held
from July through the following June:

	* SMB = (SL + SM + SH) / 3 - (BL + BM + BH) / 3
	* HML = (SH + BH) / 2 - (SL + BL) / 2

Input and output tables are stored as parquet or csv. Results can optionally
be compared with the published factors, saved to a PostgreSQL database and
uploaded to Backblaze B2.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ffactors.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.PersistentFlags().String("data-dir", ".", "directory holding the input tables")
	rootCmd.PersistentFlags().String("output-dir", "", "directory the output tables are written to (default is the data directory)")
	rootCmd.PersistentFlags().String("format", "parquet", "table format (parquet or csv)")

	for key, flag := range map[string]string{
		"data_dir":   "data-dir",
		"output_dir": "output-dir",
		"format":     "format",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			log.Panic().Err(err).Str("Flag", flag).Msg("BindPFlag failed")
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Warn().Str("LogLevel", logLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".ffactors" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".ffactors")
	}

	viper.SetEnvPrefix("ffactors")
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault("reference_exchange", "N")
	viper.SetDefault("compare.start", "1970-01-01")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}
