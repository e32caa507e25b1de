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

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/ffactors/library"
)

var assumeYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete runs from the factor library",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		myLibrary, err := library.New(ctx, viper.GetString("db.url"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to the factor library")
		}
		defer myLibrary.Close()

		for _, id := range args {
			run, err := myLibrary.RunFromID(ctx, id)
			if err != nil {
				log.Fatal().Err(err).Str("ID", id).Msg("could not get run for ID")
			}

			confirmed := assumeYes
			if !confirmed {
				confirmForm := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("Are you sure you want to delete run %s (%s - %s)?", run.ShortID(),
								run.FirstMonth.Format("2006-01"), run.LastMonth.Format("2006-01"))).
							Value(&confirmed),
					),
				)

				if err := confirmForm.Run(); err != nil {
					log.Fatal().Err(err).Msg("failed to create wizard")
				}
			}

			if !confirmed {
				fmt.Printf("Ok, we won't delete run %s\n", run.ShortID())
				continue
			}

			fmt.Printf("deleting run %s...\n", run.ShortID())
			if err := run.Delete(ctx); err != nil {
				log.Fatal().Err(err).Msg("could not delete run")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "delete without asking for confirmation")
}
